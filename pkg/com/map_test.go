package com

import (
	"sync/atomic"
	"testing"
)

type testClient struct {
	id Uid
	c  int32
}

func (t *testClient) Id() Uid      { return t.id }
func (t *testClient) Disconnect()  {}
func (t *testClient) change(n int) { atomic.AddInt32(&t.c, int32(n)) }

func TestPointerValue(t *testing.T) {
	m := NewNetMap[Uid, *testClient]()
	c := testClient{id: NewUid()}
	m.Add(&c)
	fc, _ := m.FindBy(func(x *testClient) bool { return x.id == c.id })
	c.change(100)
	fc2, _ := m.Find(fc.Id())

	if c.c != fc.c || c.c != fc2.c {
		t.Errorf("not expected change, o: %v != %v != %v", c.c, fc.c, fc2.c)
	}
}

func TestMapRemove(t *testing.T) {
	m := NewNetMap[Uid, *testClient]()
	c := testClient{id: NewUid()}
	m.Add(&c)
	if m.Len() != 1 || !m.Has(c.id) {
		t.Fatal("client was not added")
	}
	m.Remove(&c)
	if !m.IsEmpty() {
		t.Fatal("client was not removed")
	}
	if _, err := m.Find(c.id); err != ErrNotFound {
		t.Fatalf("find removed: %v, want ErrNotFound", err)
	}
}

func TestMapNilKey(t *testing.T) {
	m := NewMap[Uid, int]()
	if _, err := m.Find(NilUid); err != ErrNotFound {
		t.Fatalf("nil key: %v, want ErrNotFound", err)
	}
}
