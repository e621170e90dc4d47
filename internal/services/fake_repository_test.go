package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/repositories"
)

// fakeRepository is an in-memory repositories.Repository for service tests.
// It mirrors the database-level behaviors services rely on: generated IDs,
// duplicate key errors on unique columns and ordered content reads.
type fakeRepository struct {
	users        map[uint]models.User
	courses      map[uint]models.Course
	modules      map[uint]models.Module
	lessons      map[uint]models.Lesson
	enrollments  map[uint]models.Enrollment
	progress     map[[3]uint]models.CourseProgress
	announces    map[uint]models.Announcement
	testimonials map[uint]models.Testimonial
	nextID       uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:        make(map[uint]models.User),
		courses:      make(map[uint]models.Course),
		modules:      make(map[uint]models.Module),
		lessons:      make(map[uint]models.Lesson),
		enrollments:  make(map[uint]models.Enrollment),
		progress:     make(map[[3]uint]models.CourseProgress),
		announces:    make(map[uint]models.Announcement),
		testimonials: make(map[uint]models.Testimonial),
	}
}

func (f *fakeRepository) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) Users() repositories.UserRepository                 { return (*fakeUsers)(f) }
func (f *fakeRepository) Catalog() repositories.CatalogRepository           { return (*fakeCatalog)(f) }
func (f *fakeRepository) Enrollments() repositories.EnrollmentRepository    { return (*fakeEnrollments)(f) }
func (f *fakeRepository) Progress() repositories.ProgressRepository         { return (*fakeProgress)(f) }
func (f *fakeRepository) Announcements() repositories.AnnouncementRepository {
	return (*fakeAnnouncements)(f)
}
func (f *fakeRepository) Testimonials() repositories.TestimonialRepository {
	return (*fakeTestimonials)(f)
}
func (f *fakeRepository) Stats() repositories.StatsRepository { return (*fakeStats)(f) }

// ===== USERS =====

type fakeUsers fakeRepository

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = (*fakeRepository)(f).id()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UpdateLastLogin(ctx context.Context, id uint) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	f.users[id] = user
	return nil
}

// ===== CATALOG =====

type fakeCatalog fakeRepository

func (f *fakeCatalog) CreateCourse(ctx context.Context, course *models.Course) error {
	for _, existing := range f.courses {
		if existing.Name == course.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	course.ID = (*fakeRepository)(f).id()
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCatalog) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &course, nil
}

func (f *fakeCatalog) GetCourseByName(ctx context.Context, name string) (*models.Course, error) {
	for _, course := range f.courses {
		if course.Name == name {
			c := course
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) UpdateCourse(ctx context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, existing := range f.courses {
		if id != course.ID && existing.Name == course.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	f.courses[course.ID] = *course
	return nil
}

func (f *fakeCatalog) DeleteCourse(ctx context.Context, id uint) error {
	if _, ok := f.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCatalog) ListCourses(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var out []*models.Course
	for _, course := range f.courses {
		if filters.Name != "" && !strings.Contains(strings.ToLower(course.Name), strings.ToLower(filters.Name)) {
			continue
		}
		c := course
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeCatalog) CourseExistsByName(ctx context.Context, name string, excludeID *uint) (bool, error) {
	for id, course := range f.courses {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if course.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalog) GetCourseContent(ctx context.Context, courseID uint) (*models.Course, error) {
	course, ok := f.courses[courseID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	for _, module := range f.modules {
		if module.CourseID != courseID {
			continue
		}
		m := module
		for _, lesson := range f.lessons {
			if lesson.ModuleID == m.ID {
				m.Lessons = append(m.Lessons, lesson)
			}
		}
		sortByOrderThenID(m.Lessons, func(l models.Lesson) (int, uint) { return l.OrderIndex, l.ID })
		course.Modules = append(course.Modules, m)
	}
	sortByOrderThenID(course.Modules, func(m models.Module) (int, uint) { return m.OrderIndex, m.ID })
	return &course, nil
}

func sortByOrderThenID[T any](items []T, key func(T) (int, uint)) {
	sort.Slice(items, func(i, j int) bool {
		oi, idi := key(items[i])
		oj, idj := key(items[j])
		if oi != oj {
			return oi < oj
		}
		return idi < idj
	})
}

func (f *fakeCatalog) CreateModule(ctx context.Context, module *models.Module) error {
	module.ID = (*fakeRepository)(f).id()
	f.modules[module.ID] = *module
	return nil
}

func (f *fakeCatalog) GetModule(ctx context.Context, id uint) (*models.Module, error) {
	module, ok := f.modules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &module, nil
}

func (f *fakeCatalog) UpdateModule(ctx context.Context, module *models.Module) error {
	if _, ok := f.modules[module.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.modules[module.ID] = *module
	return nil
}

func (f *fakeCatalog) DeleteModule(ctx context.Context, id uint) error {
	if _, ok := f.modules[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.modules, id)
	return nil
}

func (f *fakeCatalog) ModuleLessonCount(ctx context.Context, moduleID uint) (int64, error) {
	var count int64
	for _, lesson := range f.lessons {
		if lesson.ModuleID == moduleID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCatalog) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	lesson.ID = (*fakeRepository)(f).id()
	f.lessons[lesson.ID] = *lesson
	return nil
}

func (f *fakeCatalog) GetLesson(ctx context.Context, id uint) (*models.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &lesson, nil
}

func (f *fakeCatalog) UpdateLesson(ctx context.Context, lesson *models.Lesson) error {
	if _, ok := f.lessons[lesson.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.lessons[lesson.ID] = *lesson
	return nil
}

func (f *fakeCatalog) DeleteLesson(ctx context.Context, id uint) error {
	if _, ok := f.lessons[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.lessons, id)
	return nil
}

func (f *fakeCatalog) CountLessonsByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	for _, lesson := range f.lessons {
		if lesson.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

// ===== ENROLLMENTS =====

type fakeEnrollments fakeRepository

func (f *fakeEnrollments) Create(ctx context.Context, enrollment *models.Enrollment) error {
	for _, existing := range f.enrollments {
		if existing.PaymentReference == enrollment.PaymentReference {
			return gorm.ErrDuplicatedKey
		}
	}
	enrollment.ID = (*fakeRepository)(f).id()
	f.enrollments[enrollment.ID] = *enrollment
	return nil
}

func (f *fakeEnrollments) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f.attachUser(&enrollment)
	return &enrollment, nil
}

func (f *fakeEnrollments) GetByReference(ctx context.Context, reference string) (*models.Enrollment, error) {
	for _, enrollment := range f.enrollments {
		if enrollment.PaymentReference == reference {
			e := enrollment
			f.attachUser(&e)
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEnrollments) attachUser(e *models.Enrollment) {
	if user, ok := f.users[e.UserID]; ok {
		e.User = user
	}
}

func (f *fakeEnrollments) UpdateStatus(ctx context.Context, id uint, status models.PaymentStatus) error {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	enrollment.PaymentStatus = status
	f.enrollments[id] = enrollment
	return nil
}

func (f *fakeEnrollments) matching(filters repositories.EnrollmentFilters) []*models.Enrollment {
	var out []*models.Enrollment
	for _, enrollment := range f.enrollments {
		if filters.UserID != nil && enrollment.UserID != *filters.UserID {
			continue
		}
		if filters.CourseType != nil && enrollment.CourseType != *filters.CourseType {
			continue
		}
		if filters.Status != nil && enrollment.PaymentStatus != *filters.Status {
			continue
		}
		e := enrollment
		f.attachUser(&e)
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeEnrollments) List(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, int64, error) {
	out := f.matching(filters)
	total := int64(len(out))

	// Same paging defaults as the database helper, so a caller that needs
	// the whole ledger cannot get it through List by accident.
	limit := filters.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeEnrollments) ListAll(ctx context.Context, filters repositories.EnrollmentFilters) ([]*models.Enrollment, error) {
	return f.matching(filters), nil
}

func (f *fakeEnrollments) GetByUser(ctx context.Context, userID uint) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, enrollment := range f.enrollments {
		if enrollment.UserID == userID {
			e := enrollment
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== PROGRESS =====

type fakeProgress fakeRepository

func (f *fakeProgress) Upsert(ctx context.Context, progress *models.CourseProgress) error {
	key := [3]uint{progress.UserID, progress.CourseID, progress.LessonID}
	if existing, ok := f.progress[key]; ok {
		existing.Completed = progress.Completed
		existing.CompletedAt = progress.CompletedAt
		f.progress[key] = existing
		progress.ID = existing.ID
		return nil
	}
	progress.ID = (*fakeRepository)(f).id()
	f.progress[key] = *progress
	return nil
}

func (f *fakeProgress) GetByUser(ctx context.Context, userID uint) ([]*models.CourseProgress, error) {
	var out []*models.CourseProgress
	for _, row := range f.progress {
		if row.UserID == userID {
			r := row
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProgress) GetByUserAndCourse(ctx context.Context, userID, courseID uint) ([]*models.CourseProgress, error) {
	var out []*models.CourseProgress
	for _, row := range f.progress {
		if row.UserID == userID && row.CourseID == courseID {
			r := row
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProgress) CountCompleted(ctx context.Context, userID, courseID uint) (int64, error) {
	var count int64
	for _, row := range f.progress {
		if row.UserID == userID && row.CourseID == courseID && row.Completed {
			count++
		}
	}
	return count, nil
}

// ===== ANNOUNCEMENTS =====

type fakeAnnouncements fakeRepository

func (f *fakeAnnouncements) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.ID = (*fakeRepository)(f).id()
	announcement.CreatedAt = time.Now()
	f.announces[announcement.ID] = *announcement
	return nil
}

func (f *fakeAnnouncements) GetByID(ctx context.Context, id uint) (*models.Announcement, error) {
	announcement, ok := f.announces[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &announcement, nil
}

func (f *fakeAnnouncements) Update(ctx context.Context, announcement *models.Announcement) error {
	if _, ok := f.announces[announcement.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.announces[announcement.ID] = *announcement
	return nil
}

func (f *fakeAnnouncements) Delete(ctx context.Context, id uint) error {
	if _, ok := f.announces[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.announces, id)
	return nil
}

func (f *fakeAnnouncements) ListActiveFor(ctx context.Context, audience string) ([]*models.Announcement, error) {
	now := time.Now()
	var out []*models.Announcement
	for _, a := range f.announces {
		if !a.IsActive {
			continue
		}
		if a.ExpiresAt != nil && !a.ExpiresAt.After(now) {
			continue
		}
		if a.TargetAudience != models.AudienceAll && a.TargetAudience != audience {
			continue
		}
		row := a
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeAnnouncements) List(ctx context.Context, filters repositories.AnnouncementFilters) ([]*models.Announcement, int64, error) {
	var out []*models.Announcement
	for _, a := range f.announces {
		if filters.ActiveOnly && !a.IsActive {
			continue
		}
		if filters.Audience != "" && a.TargetAudience != filters.Audience {
			continue
		}
		row := a
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// ===== TESTIMONIALS =====

type fakeTestimonials fakeRepository

func (f *fakeTestimonials) Create(ctx context.Context, testimonial *models.Testimonial) error {
	testimonial.ID = (*fakeRepository)(f).id()
	f.testimonials[testimonial.ID] = *testimonial
	return nil
}

func (f *fakeTestimonials) GetByID(ctx context.Context, id uint) (*models.Testimonial, error) {
	testimonial, ok := f.testimonials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &testimonial, nil
}

func (f *fakeTestimonials) Update(ctx context.Context, testimonial *models.Testimonial) error {
	if _, ok := f.testimonials[testimonial.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.testimonials[testimonial.ID] = *testimonial
	return nil
}

func (f *fakeTestimonials) ListPublished(ctx context.Context) ([]*models.Testimonial, error) {
	var out []*models.Testimonial
	for _, t := range f.testimonials {
		if t.IsPublished {
			row := t
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ===== STATS =====

type fakeStats fakeRepository

func (f *fakeStats) GetPlatformStats(ctx context.Context) (*repositories.PlatformStats, error) {
	stats := &repositories.PlatformStats{
		TotalUsers:       len(f.users),
		TotalCourses:     len(f.courses),
		TotalModules:     len(f.modules),
		TotalLessons:     len(f.lessons),
		TotalEnrollments: len(f.enrollments),
	}
	for _, e := range f.enrollments {
		switch e.PaymentStatus {
		case models.PaymentCompleted:
			stats.CompletedEnrollments++
			stats.TotalRevenue += int64(e.Price)
		case models.PaymentPending:
			stats.PendingEnrollments++
		}
	}
	return stats, nil
}
