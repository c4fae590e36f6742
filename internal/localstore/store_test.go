package localstore

import "testing"

// TestMemory_SetGetDelete 基本读写删
func TestMemory_SetGetDelete(t *testing.T) {
	s := NewMemory()

	if _, ok, err := s.Get(KeyUser); ok || err != nil {
		t.Fatalf("empty store Get: ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set(KeyUser, `{"id":"15"}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get(KeyUser)
	if err != nil || !ok || v != `{"id":"15"}` {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}

	// 覆盖写
	if err := s.Set(KeyUser, `{"id":"16"}`); err != nil {
		t.Fatal(err)
	}
	v, _, _ = s.Get(KeyUser)
	if v != `{"id":"16"}` {
		t.Errorf("after overwrite Get = %q", v)
	}

	if err := s.Delete(KeyUser); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(KeyUser); ok {
		t.Error("key survived Delete")
	}

	// 删除不存在的键不报错
	if err := s.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}
