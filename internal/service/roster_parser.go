package service

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// rosterColumns 名册固定列：name, class, section, rollNumber, registerNumber, parentName, address, dob
const rosterColumns = 8

const dobLayout = "2006-01-02"

var (
	ErrMalformedRow = errors.New("名册行格式错误")
	ErrEmptyRoster  = errors.New("名册内容为空")
)

// RowError 带行号的名册解析错误
type RowError struct {
	Line   int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("第 %d 行: %s", e.Line, e.Reason)
}

// Unwrap 使 errors.Is(err, ErrMalformedRow) 成立
func (e *RowError) Unwrap() error { return ErrMalformedRow }

// RosterRow 解析后的名册行
type RosterRow struct {
	Line           int
	Name           string
	Class          string
	Section        string
	RollNumber     string
	RegisterNumber string
	ParentName     string
	Address        string
	DOB            string
}

// ParseRosterText 解析逗号分隔的名册文本
// 首行为表头；空行跳过；name 为空的行跳过；字段数不为 8 或 dob 非法时整体失败
func ParseRosterText(content string) ([]RosterRow, error) {
	lines := strings.Split(content, "\n")

	var rows []RosterRow
	for i, line := range lines {
		if i == 0 {
			continue
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		row, ok, err := parseRosterFields(i+1, strings.Split(line, ","))
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ParseRosterSheet 解析 xlsx 名册的第一个工作表，规则与文本格式一致
func ParseRosterSheet(r io.Reader) ([]RosterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: 无法读取 xlsx 文件", ErrMalformedRow)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyRoster
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	var rows []RosterRow
	for i, cols := range cells {
		if i == 0 || isBlankRow(cols) {
			continue
		}
		// excelize 会省略行尾空单元格
		fields := cols
		if len(fields) < rosterColumns {
			fields = append(make([]string, 0, rosterColumns), cols...)
			for len(fields) < rosterColumns {
				fields = append(fields, "")
			}
		}

		row, ok, err := parseRosterFields(i+1, fields)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func isBlankRow(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseRosterFields 校验单行字段，ok=false 表示该行应被跳过
func parseRosterFields(line int, fields []string) (RosterRow, bool, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if len(fields) == 0 || fields[0] == "" {
		return RosterRow{}, false, nil
	}
	if len(fields) > rosterColumns && !isBlankRow(fields[rosterColumns:]) {
		return RosterRow{}, false, &RowError{Line: line, Reason: fmt.Sprintf("字段数为 %d，应为 %d", len(fields), rosterColumns)}
	}
	if len(fields) < rosterColumns {
		return RosterRow{}, false, &RowError{Line: line, Reason: fmt.Sprintf("字段数为 %d，应为 %d", len(fields), rosterColumns)}
	}

	row := RosterRow{
		Line:           line,
		Name:           fields[0],
		Class:          fields[1],
		Section:        fields[2],
		RollNumber:     fields[3],
		RegisterNumber: fields[4],
		ParentName:     fields[5],
		Address:        fields[6],
		DOB:            fields[7],
	}

	if row.Class == "" {
		return RosterRow{}, false, &RowError{Line: line, Reason: "class 不能为空"}
	}
	if _, err := time.Parse(dobLayout, row.DOB); err != nil {
		return RosterRow{}, false, &RowError{Line: line, Reason: fmt.Sprintf("dob %q 不是 YYYY-MM-DD 格式", row.DOB)}
	}
	return row, true, nil
}
