package cli

import (
	"reflect"
	"testing"

	"github.com/user-none/enes/libretro"
)

func TestParseButton(t *testing.T) {
	tests := []struct {
		name    string
		want    uint
		wantErr bool
	}{
		{"a", libretro.JoypadA, false},
		{"Start", libretro.JoypadStart, false},
		{" SELECT ", libretro.JoypadSelect, false},
		{"up", libretro.JoypadUp, false},
		{"x", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseButton(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseButton(%q) err = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseButton(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseButtons(t *testing.T) {
	ids, err := ParseButtons([]string{"start", "b", "right"})
	if err != nil {
		t.Fatal(err)
	}
	want := []uint{libretro.JoypadStart, libretro.JoypadB, libretro.JoypadRight}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ParseButtons = %v, want %v", ids, want)
	}
	if _, err := ParseButtons([]string{"a", "turbo"}); err == nil {
		t.Error("ParseButtons accepted turbo")
	}
}
