package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = m.nextID
	m.nextID++
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[uint]*model.Student
	nextID   uint
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[uint]*model.Student), nextID: 1}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, s := range m.students {
		if s.Name == student.Name && s.Class == student.Class && s.DOB == student.DOB {
			return gorm.ErrDuplicatedKey
		}
	}
	student.ID = m.nextID
	m.nextID++
	cp := *student
	m.students[student.ID] = &cp
	return nil
}

func (m *mockStudentRepo) BatchCreate(ctx context.Context, students []*model.Student) error {
	for _, s := range students {
		if err := m.Create(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id uint) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByIdentity(_ context.Context, name, class, dob string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Name == name && s.Class == class && s.DOB == dob {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ListByClass(_ context.Context, class string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.Class == class {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStudentRepo) ListByClasses(_ context.Context, classes []string) ([]model.Student, error) {
	set := make(map[string]bool, len(classes))
	for _, c := range classes {
		set[c] = true
	}
	var result []model.Student
	for _, s := range m.students {
		if set[s.Class] {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock MarkRepository ──

type mockMarkRepo struct {
	marks  []model.Mark
	nextID uint
	// upsertCalls 记录每次 Upsert 写入的行数
	upsertCalls []int
}

func newMockMarkRepo() *mockMarkRepo {
	return &mockMarkRepo{nextID: 1}
}

func (m *mockMarkRepo) ListByStudent(_ context.Context, studentID uint) ([]model.Mark, error) {
	var result []model.Mark
	for _, mk := range m.marks {
		if mk.StudentID == studentID {
			result = append(result, mk)
		}
	}
	return result, nil
}

func (m *mockMarkRepo) ListByStudentForUpdate(ctx context.Context, studentID uint) ([]model.Mark, error) {
	return m.ListByStudent(ctx, studentID)
}

func (m *mockMarkRepo) Upsert(_ context.Context, marks []model.Mark) error {
	m.upsertCalls = append(m.upsertCalls, len(marks))
	for _, in := range marks {
		found := false
		for i := range m.marks {
			if m.marks[i].StudentID == in.StudentID && m.marks[i].Key() == in.Key() {
				m.marks[i].Score, m.marks[i].Total = in.Score, in.Total
				found = true
				break
			}
		}
		if !found {
			in.ID = m.nextID
			m.nextID++
			m.marks = append(m.marks, in)
		}
	}
	return nil
}

// ── Mock SuggestionRepository ──

type mockSuggestionRepo struct {
	list   []model.Suggestion
	nextID uint
}

func newMockSuggestionRepo() *mockSuggestionRepo {
	return &mockSuggestionRepo{nextID: 1}
}

func (m *mockSuggestionRepo) Create(_ context.Context, s *model.Suggestion) error {
	s.ID = m.nextID
	m.nextID++
	m.list = append(m.list, *s)
	return nil
}

func (m *mockSuggestionRepo) ListByStudent(_ context.Context, studentID uint) ([]model.Suggestion, error) {
	var result []model.Suggestion
	for i := len(m.list) - 1; i >= 0; i-- {
		if m.list[i].StudentID == studentID {
			result = append(result, m.list[i])
		}
	}
	return result, nil
}

// ── 测试辅助 ──

type mockRepos struct {
	repo       *repository.Repository
	users      *mockUserRepo
	students   *mockStudentRepo
	marks      *mockMarkRepo
	suggestion *mockSuggestionRepo
}

func newMockRepos() *mockRepos {
	m := &mockRepos{
		users:      newMockUserRepo(),
		students:   newMockStudentRepo(),
		marks:      newMockMarkRepo(),
		suggestion: newMockSuggestionRepo(),
	}
	m.repo = &repository.Repository{
		User:       m.users,
		Student:    m.students,
		Mark:       m.marks,
		Suggestion: m.suggestion,
	}
	return m
}

func (m *mockRepos) addStudent(name, class, dob string) *model.Student {
	s := &model.Student{Name: name, Class: class, Section: "A", DOB: dob}
	_ = m.students.Create(context.Background(), s)
	return s
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }
