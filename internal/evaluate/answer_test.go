package evaluate

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseAnswer_MultipleChoice(t *testing.T) {
	q := twoCorrect()

	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"1", []int{0}, false},
		{"1,3", []int{0, 2}, false},
		{" 3 , 1 ", []int{2, 0}, false},
		{"1 3", []int{0, 2}, false},
		{"1,1", []int{0}, false},
		{"", nil, true},
		{"   ", nil, true},
		{"a", nil, true},
		{"0", nil, true},
		{"4", nil, true},
		{"1,x", nil, true},
		{"-1", nil, true},
	}

	for _, tc := range tests {
		got, err := ParseAnswer(q, tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ParseAnswer(%q) error = %v, want ErrInvalidInput", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAnswer(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if !reflect.DeepEqual(got.Choices, tc.want) {
			t.Errorf("ParseAnswer(%q) = %v, want %v", tc.input, got.Choices, tc.want)
		}
	}
}

func TestParseAnswer_Matching(t *testing.T) {
	q := animals()

	got, err := ParseAnswer(q, "2,3,1")
	if err != nil {
		t.Fatalf("ParseAnswer: %v", err)
	}
	want := map[string]int{"dog": 1, "cat": 2, "cow": 0}
	if !reflect.DeepEqual(got.Mapping, want) {
		t.Errorf("Mapping = %v, want %v", got.Mapping, want)
	}
	if !Check(q, got) {
		t.Error("parsed answer should be correct")
	}

	for _, in := range []string{"2,3", "2,3,1,1", "2,3,4", "x,y,z", ""} {
		if _, err := ParseAnswer(q, in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseAnswer(%q) error = %v, want ErrInvalidInput", in, err)
		}
	}
}
