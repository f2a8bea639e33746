package hotkey

import "testing"

type keyEvent struct {
	code  uint16
	value int32
}

func TestChord(t *testing.T) {
	tests := []struct {
		name      string
		events    []keyEvent
		wantStart int
		wantEnd   int
	}{
		{"full chord", []keyEvent{{codeLCtrl, 1}, {codeLShift, 1}, {codeF12, 1}, {codeF12, 0}}, 1, 1},
		{"right modifiers", []keyEvent{{codeRCtrl, 1}, {codeRShift, 1}, {codeF12, 1}, {codeF12, 0}}, 1, 1},
		{"no shift", []keyEvent{{codeLCtrl, 1}, {codeF12, 1}, {codeF12, 0}}, 0, 0},
		{"modifier released first", []keyEvent{{codeLCtrl, 1}, {codeLShift, 1}, {codeLCtrl, 0}, {codeF12, 1}}, 0, 0},
		{"repeat is not a new start", []keyEvent{{codeLCtrl, 1}, {codeLShift, 1}, {codeF12, 1}, {codeF12, 2}, {codeF12, 2}, {codeF12, 0}}, 1, 1},
		{"modifier up mid chord", []keyEvent{{codeLCtrl, 1}, {codeLShift, 1}, {codeF12, 1}, {codeLShift, 0}, {codeF12, 0}}, 1, 1},
		{"held modifier repeats", []keyEvent{{codeLCtrl, 1}, {codeLCtrl, 2}, {codeLShift, 1}, {codeF12, 1}}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c chord
			var starts, ends int
			for _, ev := range tt.events {
				s, e := c.feed(ev.code, ev.value)
				if s {
					starts++
				}
				if e {
					ends++
				}
			}
			if starts != tt.wantStart || ends != tt.wantEnd {
				t.Errorf("starts=%d ends=%d, want %d/%d", starts, ends, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
