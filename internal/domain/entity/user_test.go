package entity

import "testing"

func TestUser_HasCourse(t *testing.T) {
	user := &User{Courses: []uint{1, 3}}

	if !user.HasCourse(3) {
		t.Error("HasCourse(3) = false, want true")
	}
	if user.HasCourse(2) {
		t.Error("HasCourse(2) = true, want false")
	}
}

func TestUser_AddCourse_Deduplicates(t *testing.T) {
	user := &User{}
	user.AddCourse(7)
	user.AddCourse(7)

	if len(user.Courses) != 1 {
		t.Errorf("Courses = %v, want a single entry", user.Courses)
	}
}

func TestUser_Snapshot(t *testing.T) {
	user := &User{
		ID:     42,
		Name:   "Alice",
		Avatar: Asset{URL: "https://assets.test/a.png"},
		Role:   RoleAdmin,
	}

	snap := user.Snapshot()
	if snap.UserID != 42 || snap.Name != "Alice" || snap.AvatarURL != "https://assets.test/a.png" || snap.Role != RoleAdmin {
		t.Errorf("Snapshot() = %+v", snap)
	}
}

func TestNotification_MarkRead(t *testing.T) {
	n := &Notification{Status: NotificationUnread}

	if !n.MarkRead() {
		t.Error("MarkRead() = false on unread notification")
	}
	if n.Status != NotificationRead {
		t.Errorf("Status = %v, want read", n.Status)
	}
	if n.MarkRead() {
		t.Error("MarkRead() = true on already-read notification")
	}
}
