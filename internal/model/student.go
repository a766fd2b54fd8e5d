package model

// Student 学生：对应 students
// (Name, Class, DOB) 是学生登录凭据，数据库层唯一
type Student struct {
	BaseModel
	Name           string `gorm:"type:varchar(100);not null;uniqueIndex:uk_students_identity,priority:1" json:"name"`
	Class          string `gorm:"type:varchar(50);not null;uniqueIndex:uk_students_identity,priority:2"  json:"class"`
	Section        string `gorm:"type:varchar(20);not null"                                             json:"section"`
	RollNumber     string `gorm:"type:varchar(50);not null"                                             json:"rollNumber"`
	RegisterNumber string `gorm:"type:varchar(50);not null"                                             json:"registerNumber"`
	ParentName     string `gorm:"type:varchar(100);not null"                                            json:"parentName"`
	Address        string `gorm:"type:text;not null"                                                    json:"address"`
	DOB            string `gorm:"column:dob;type:varchar(10);not null;uniqueIndex:uk_students_identity,priority:3" json:"dob"` // YYYY-MM-DD
}

// TableName 指定表名
func (Student) TableName() string { return "students" }
