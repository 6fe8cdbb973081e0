//
// Copyright (c) 2025 Markku Rossi
//
// All rights reserved.
//

package secret

import (
	"testing"
)

func TestParseParty(t *testing.T) {
	tests := []struct {
		name     string
		expected Party
	}{
		{"a", Alice},
		{"Alice", Alice},
		{"b", Bob},
		{"bob", Bob},
		{"public", Public},
	}
	for _, test := range tests {
		p, err := ParseParty(test.name)
		if err != nil {
			t.Errorf("ParseParty(%q): %v", test.name, err)
			continue
		}
		if p != test.expected {
			t.Errorf("ParseParty(%q): got %v, expected %v",
				test.name, p, test.expected)
		}
	}
	if _, err := ParseParty("carol"); err == nil {
		t.Errorf("ParseParty accepted unknown party")
	}
	if Alice.Peer() != Bob || Bob.Peer() != Alice || Public.Peer() != Public {
		t.Errorf("Peer failed")
	}
}
