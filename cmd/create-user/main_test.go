package main

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

func TestFillMissing(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("Asha\nsecret123\n"))
	u, err := fillMissing(newUser{Email: " Asha@Example.com "}, in, io.Discard)
	if err != nil {
		t.Fatalf("fillMissing: %v", err)
	}
	if u.Name != "Asha" || u.Email != "asha@example.com" || u.Password != "secret123" {
		t.Errorf("unexpected user %+v", u)
	}
}

func TestFillMissing_Invalid(t *testing.T) {
	cases := []struct {
		name string
		u    newUser
	}{
		{"bad email", newUser{Name: "A", Email: "asha", Password: "secret123"}},
		{"short password", newUser{Name: "A", Email: "a@b.c", Password: "123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := bufio.NewReader(strings.NewReader(""))
			if _, err := fillMissing(tc.u, in, io.Discard); err == nil {
				t.Error("expected error")
			}
		})
	}
}
