package profile

import "testing"

func TestProfile_Owns(t *testing.T) {
	teacher := Profile{ID: "t1", Role: RoleTeacher}
	admin := Profile{ID: "a1", Role: RoleAdmin}

	tests := []struct {
		name      string
		caller    Profile
		teacherID string
		want      bool
	}{
		{name: "teacher owns assigned record", caller: teacher, teacherID: "t1", want: true},
		{name: "teacher does not own foreign record", caller: teacher, teacherID: "t2", want: false},
		{name: "teacher does not own unassigned record", caller: teacher, teacherID: "", want: false},
		{name: "admin owns everything", caller: admin, teacherID: "t2", want: true},
		{name: "admin owns unassigned records", caller: admin, teacherID: "", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caller.Owns(tt.teacherID); got != tt.want {
				t.Errorf("Owns(%q) = %v, want %v", tt.teacherID, got, tt.want)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("Role(%q).Valid() = false", r)
		}
	}
	if Role("superuser").Valid() {
		t.Error("Role(\"superuser\").Valid() = true")
	}
}
