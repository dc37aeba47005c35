// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lattice

import "testing"

func TestCPFactGetUnbound(t *testing.T) {
	f := NewCPFact[string]()
	if got := f.Get("x"); !got.IsUndef() {
		t.Errorf("Get on unbound var = %v, want UNDEF", got)
	}
}

func TestCPFactUpdate(t *testing.T) {
	f := NewCPFact[string]()
	if !f.Update("x", ConstValue(1)) {
		t.Errorf("Update should report change on first bind")
	}
	if f.Update("x", ConstValue(1)) {
		t.Errorf("Update should report no change when re-binding the same value")
	}
	if !f.Update("x", ConstValue(2)) {
		t.Errorf("Update should report change when the value changes")
	}
}

func TestCPFactMeetInto(t *testing.T) {
	a := NewCPFact[string]()
	a.Update("x", ConstValue(1))
	a.Update("y", ConstValue(3))

	b := NewCPFact[string]()
	b.Update("x", ConstValue(2))
	b.Update("z", ConstValue(9))

	MeetInto(a, b)

	if got := b.Get("x"); !got.Equal(NACValue()) {
		t.Errorf("x = %v, want NAC", got)
	}
	if got := b.Get("y"); !got.Equal(ConstValue(3)) {
		t.Errorf("y = %v, want CONST(3)", got)
	}
	if got := b.Get("z"); !got.Equal(ConstValue(9)) {
		t.Errorf("z = %v, want CONST(9) (untouched)", got)
	}
}

func TestCPFactCopyIsIndependent(t *testing.T) {
	a := NewCPFact[string]()
	a.Update("x", ConstValue(1))
	b := a.Copy()
	b.Update("x", ConstValue(2))
	if got := a.Get("x"); !got.Equal(ConstValue(1)) {
		t.Errorf("mutating the copy affected the original: x = %v", got)
	}
}

func TestCPFactEqual(t *testing.T) {
	a := NewCPFact[string]()
	a.Update("x", ConstValue(1))
	b := NewCPFact[string]()
	b.Update("x", ConstValue(1))
	if !a.Equal(b) {
		t.Errorf("expected equal facts to compare equal")
	}
	b.Update("y", ConstValue(2))
	if a.Equal(b) {
		t.Errorf("expected facts with different key sets to compare unequal")
	}
}
