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

func TestMeet(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want Value
	}{
		{"undef meet undef", UndefValue(), UndefValue(), UndefValue()},
		{"undef meet const", UndefValue(), ConstValue(5), ConstValue(5)},
		{"const meet undef", ConstValue(5), UndefValue(), ConstValue(5)},
		{"same const", ConstValue(5), ConstValue(5), ConstValue(5)},
		{"distinct const", ConstValue(5), ConstValue(6), NACValue()},
		{"nac meet const", NACValue(), ConstValue(5), NACValue()},
		{"const meet nac", ConstValue(5), NACValue(), NACValue()},
		{"nac meet nac", NACValue(), NACValue(), NACValue()},
		{"nac meet undef", NACValue(), UndefValue(), NACValue()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Meet(tt.a, tt.b)
			if !got.Equal(tt.want) {
				t.Errorf("Meet(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMeetCommutative(t *testing.T) {
	vals := []Value{UndefValue(), NACValue(), ConstValue(1), ConstValue(2)}
	for _, a := range vals {
		for _, b := range vals {
			if !Meet(a, b).Equal(Meet(b, a)) {
				t.Errorf("Meet not commutative for %v, %v", a, b)
			}
		}
	}
}

func TestMeetIdempotent(t *testing.T) {
	vals := []Value{UndefValue(), NACValue(), ConstValue(1), ConstValue(2)}
	for _, a := range vals {
		if !Meet(a, a).Equal(a) {
			t.Errorf("Meet not idempotent for %v", a)
		}
	}
}

func TestMeetAssociative(t *testing.T) {
	vals := []Value{UndefValue(), NACValue(), ConstValue(1), ConstValue(2)}
	for _, a := range vals {
		for _, b := range vals {
			for _, c := range vals {
				lhs := Meet(Meet(a, b), c)
				rhs := Meet(a, Meet(b, c))
				if !lhs.Equal(rhs) {
					t.Errorf("Meet not associative for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}
