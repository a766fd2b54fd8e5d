//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/internal/repository"
	"github.com/KarthikeyanSA369/LearnExa/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=learnexa password=learnexa dbname=learnexa_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "数据库迁移失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func resetTables(t *testing.T) {
	t.Helper()
	if err := testDB.Exec("TRUNCATE suggestions, marks, students, users RESTART IDENTITY CASCADE").Error; err != nil {
		t.Fatalf("清空测试表失败: %v", err)
	}
}

func createStudent(t *testing.T, repo *repository.Repository, name string) *model.Student {
	t.Helper()
	s := &model.Student{
		Name: name, Class: "CSE-A", Section: "A", RollNumber: "1",
		RegisterNumber: "R1", ParentName: "P", Address: "Addr", DOB: "2001-02-03",
	}
	if err := repo.Student.Create(context.Background(), s); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}
	return s
}

// ═══════════════════════════════════════════════════════════
// Tests
// ═══════════════════════════════════════════════════════════

func TestUserRepo_UniqueUsername(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	u := &model.User{Username: "teacher1", PasswordHash: "x", Role: model.RoleTeacher, Name: "T", IsActive: true}
	if err := repo.User.Create(ctx, u); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	dup := &model.User{Username: "teacher1", PasswordHash: "x", Role: model.RoleTeacher, Name: "T2", IsActive: true}
	if err := repo.User.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("期望 ErrDuplicatedKey，实际 %v", err)
	}

	list, err := repo.User.ListByRole(ctx, model.RoleTeacher)
	if err != nil || len(list) != 1 {
		t.Errorf("期望 1 名教师，实际 %d, %v", len(list), err)
	}
}

func TestStudentRepo_IdentityLookup(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	createStudent(t, repo, "Alice")

	got, err := repo.Student.GetByIdentity(ctx, "Alice", "CSE-A", "2001-02-03")
	if err != nil || got.Name != "Alice" {
		t.Fatalf("按三元组查询失败: %v", err)
	}
	if _, err := repo.Student.GetByIdentity(ctx, "Alice", "CSE-A", "2001-02-04"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际 %v", err)
	}

	dup := &model.Student{Name: "Alice", Class: "CSE-A", DOB: "2001-02-03"}
	if err := repo.Student.Create(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("重复学生期望 ErrDuplicatedKey，实际 %v", err)
	}
}

func TestMarkRepo_UpsertOnNaturalKey(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	st := createStudent(t, repo, "Alice")

	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Mark.ListByStudentForUpdate(ctx, st.ID); err != nil {
			return err
		}
		return tx.Mark.Upsert(ctx, []model.Mark{
			{StudentID: st.ID, ExamName: "E1", Subject: "Math", Score: 50, Total: 100},
			{StudentID: st.ID, ExamName: "E1", Subject: "Physics", Score: 60, Total: 100},
		})
	})
	if err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	if err := repo.Mark.Upsert(ctx, []model.Mark{
		{StudentID: st.ID, ExamName: "E1", Subject: "Math", Score: 90, Total: 100},
	}); err != nil {
		t.Fatalf("覆盖写入失败: %v", err)
	}

	marks, err := repo.Mark.ListByStudent(ctx, st.ID)
	if err != nil {
		t.Fatalf("查询成绩失败: %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("覆盖后期望 2 条成绩，实际 %d", len(marks))
	}
	for _, m := range marks {
		if m.Subject == "Math" && m.Score != 90 {
			t.Errorf("Math 期望 score=90，实际 %d", m.Score)
		}
	}
}

func TestRepository_TransactionRollback(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	sentinel := errors.New("rollback")
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Student.BatchCreate(ctx, []*model.Student{
			{Name: "Bob", Class: "CSE-A", DOB: "2001-01-01"},
		}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("期望返回 sentinel，实际 %v", err)
	}

	list, _ := repo.Student.ListByClass(ctx, "CSE-A")
	if len(list) != 0 {
		t.Errorf("事务回滚后不应留下学生，实际 %d", len(list))
	}
}

func TestSuggestionRepo_NewestFirst(t *testing.T) {
	resetTables(t)
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	st := createStudent(t, repo, "Alice")
	teacher := &model.User{Username: "teacher1", PasswordHash: "x", Role: model.RoleTeacher, Name: "T", IsActive: true}
	if err := repo.User.Create(ctx, teacher); err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}

	for _, content := range []string{"first", "second"} {
		if err := repo.Suggestion.Create(ctx, &model.Suggestion{StudentID: st.ID, TeacherID: teacher.ID, Content: content}); err != nil {
			t.Fatalf("创建评语失败: %v", err)
		}
	}

	list, err := repo.Suggestion.ListByStudent(ctx, st.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("期望 2 条评语，实际 %d, %v", len(list), err)
	}
	if list[0].Content != "second" {
		t.Errorf("期望最新评语在前，实际 %s", list[0].Content)
	}
}
