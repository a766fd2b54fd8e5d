package model

import "testing"

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "teacher", "student"} {
		r, err := ParseRole(s)
		if err != nil {
			t.Fatalf("ParseRole(%q) 失败: %v", s, err)
		}
		if r.String() != s {
			t.Errorf("期望 %s，实际 %s", s, r)
		}
	}

	if _, err := ParseRole("parent"); err == nil {
		t.Error("未知角色应返回错误")
	}
}

func TestRole_IsStaff(t *testing.T) {
	if !RoleAdmin.IsStaff() || !RoleTeacher.IsStaff() {
		t.Error("admin / teacher 应为教职工角色")
	}
	if RoleStudent.IsStaff() {
		t.Error("student 不应为教职工角色")
	}
}
