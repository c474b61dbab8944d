package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "available", input: "A", want: "A"},
		{name: "not available", input: "NA", want: "NA"},
		{name: "single shift", input: "D", want: "D"},
		{name: "multiple shifts", input: "D,E", want: "D,E"},
		{name: "all shifts", input: "D,E,OS,ON", want: "D,E,OS,ON"},
		{name: "whitespace around codes", input: " D , E ", want: "D,E"},
		{name: "duplicate shifts collapse", input: "D,D,E", want: "D,E"},
		{name: "order preserved", input: "E,D", want: "E,D"},
		{name: "empty", input: "", wantErr: true},
		{name: "only commas", input: ",,", wantErr: true},
		{name: "unknown code", input: "X", wantErr: true},
		{name: "exclusive mixed with shift", input: "A,D", wantErr: true},
		{name: "two exclusives", input: "A,NA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStatus(%q) 应该返回错误", tt.input)
				}
				if !errors.Is(err, ErrInvalidStatus) {
					t.Errorf("ParseStatus(%q) 的错误应该包含 ErrInvalidStatus，实际为 %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) 返回了意外的错误: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseStatus(%q).String() = %q，期望 %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestStatusToggle(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		toggles []string
		want    string
	}{
		{name: "toggle available over shifts", initial: "D,E", toggles: []string{"A"}, want: "A"},
		{name: "toggle not available over shifts", initial: "D,E", toggles: []string{"NA"}, want: "NA"},
		{name: "shift clears exclusive", initial: "A", toggles: []string{"D"}, want: "D"},
		{name: "add second shift", initial: "D", toggles: []string{"E"}, want: "D,E"},
		{name: "remove existing shift", initial: "D,E", toggles: []string{"D"}, want: "E"},
		{name: "last shift removed falls back to NA", initial: "D", toggles: []string{"D"}, want: "NA"},
		{name: "toggle sequence", initial: "NA", toggles: []string{"D", "E", "D", "E"}, want: "NA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := ParseStatus(tt.initial)
			if err != nil {
				t.Fatalf("解析初始状态失败: %v", err)
			}

			for _, code := range tt.toggles {
				status, err = status.Toggle(code)
				if err != nil {
					t.Fatalf("Toggle(%q) 返回了意外的错误: %v", code, err)
				}
				// 状态永远不会为空
				if status.String() == "" {
					t.Fatalf("Toggle(%q) 之后状态为空", code)
				}
			}

			if status.String() != tt.want {
				t.Errorf("最终状态 = %q，期望 %q", status.String(), tt.want)
			}
		})
	}
}

func TestStatusToggleInvalidCode(t *testing.T) {
	if _, err := Available().Toggle("X"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Toggle(\"X\") 的错误应该包含 ErrInvalidStatus，实际为 %v", err)
	}
}

func TestStatusToggleDoesNotMutateReceiver(t *testing.T) {
	status := Shifts(ShiftDay, ShiftEvening)
	if _, err := status.Toggle("D"); err != nil {
		t.Fatalf("Toggle 返回了意外的错误: %v", err)
	}
	if status.String() != "D,E" {
		t.Errorf("Toggle 修改了原状态: %q", status.String())
	}
}

func TestStatusJSONRoundTrip(t *testing.T) {
	status, err := ParseStatus("D,ON")
	if err != nil {
		t.Fatalf("解析状态失败: %v", err)
	}

	data, err := status.MarshalJSON()
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	if string(data) != `"D,ON"` {
		t.Errorf("序列化结果 = %s，期望 %q", data, `"D,ON"`)
	}

	var decoded Status
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if decoded.String() != "D,ON" {
		t.Errorf("反序列化结果 = %q，期望 %q", decoded.String(), "D,ON")
	}
}

func TestStatusUnmarshalRejectsInvalid(t *testing.T) {
	var decoded Status
	if err := decoded.UnmarshalJSON([]byte(`""`)); err == nil {
		t.Error("反序列化空状态应该返回错误")
	}
	if err := decoded.UnmarshalJSON([]byte(`"A,D"`)); err == nil {
		t.Error("反序列化独占编码和班次编码的混用应该返回错误")
	}
}
