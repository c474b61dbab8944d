package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type ExclusiveCode string

const (
	CodeAvailable    ExclusiveCode = "A"  // 全天有空
	CodeNotAvailable ExclusiveCode = "NA" // 没有空
)

type ShiftCode string

const (
	ShiftDay            ShiftCode = "D"
	ShiftEvening        ShiftCode = "E"
	ShiftOvernightStart ShiftCode = "OS"
	ShiftOvernightNone  ShiftCode = "ON"
)

var ErrInvalidStatus = errors.New("非法的状态编码")

// Status 表示某一天的可用状态
// 要么是独占编码（A / NA），要么是一个非空的班次编码集合，两者不能混用
// 数据库和 JSON 中都以逗号分隔的文本形式存储，解析和序列化只发生在边界上
type Status struct {
	Exclusive ExclusiveCode // 非空时表示独占状态，此时 Shifts 必须为空
	Shifts    []ShiftCode   // Exclusive 为空时必须非空，保持调用方给出的顺序
}

func Available() Status {
	return Status{Exclusive: CodeAvailable}
}

func NotAvailable() Status {
	return Status{Exclusive: CodeNotAvailable}
}

func Shifts(codes ...ShiftCode) Status {
	return Status{Shifts: codes}
}

func isShiftCode(code string) bool {
	switch ShiftCode(code) {
	case ShiftDay, ShiftEvening, ShiftOvernightStart, ShiftOvernightNone:
		return true
	default:
		return false
	}
}

// ParseStatus 解析文本形式的状态编码
// 空字符串、独占编码和班次编码混用、重复的独占编码都是非法的
func ParseStatus(s string) (Status, error) {
	parts := strings.Split(s, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}

	if len(codes) == 0 {
		return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}

	// 独占编码只能单独出现
	if len(codes) == 1 {
		switch ExclusiveCode(codes[0]) {
		case CodeAvailable:
			return Available(), nil
		case CodeNotAvailable:
			return NotAvailable(), nil
		}
	}

	shifts := make([]ShiftCode, 0, len(codes))
	for _, code := range codes {
		if !isShiftCode(code) {
			return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
		}
		sc := ShiftCode(code)
		duplicate := false
		for _, exists := range shifts {
			if exists == sc {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		shifts = append(shifts, sc)
	}

	return Status{Shifts: shifts}, nil
}

func (s Status) String() string {
	if s.Exclusive != "" {
		return string(s.Exclusive)
	}

	codes := make([]string, len(s.Shifts))
	for i, shift := range s.Shifts {
		codes[i] = string(shift)
	}
	return strings.Join(codes, ",")
}

// Toggle 返回点选某个编码后的新状态，原状态不会被修改
// 规则与前端的单日操作一致：
//   - 点选 A 或 NA 时清空其它所有编码
//   - 点选班次编码时先清掉独占编码，再切换该班次
//   - 切换后集合为空则回落到 NA，状态永远不会为空
func (s Status) Toggle(code string) (Status, error) {
	switch ExclusiveCode(code) {
	case CodeAvailable:
		return Available(), nil
	case CodeNotAvailable:
		return NotAvailable(), nil
	}

	if !isShiftCode(code) {
		return Status{}, fmt.Errorf("%w: %q", ErrInvalidStatus, code)
	}
	sc := ShiftCode(code)

	current := make([]ShiftCode, 0, len(s.Shifts)+1)
	if s.Exclusive == "" {
		current = append(current, s.Shifts...)
	}

	next := make([]ShiftCode, 0, len(current)+1)
	removed := false
	for _, exists := range current {
		if exists == sc {
			removed = true
			continue
		}
		next = append(next, exists)
	}
	if !removed {
		next = append(next, sc)
	}

	if len(next) == 0 {
		return NotAvailable(), nil
	}
	return Status{Shifts: next}, nil
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}
