// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCastRoundTrip(t *testing.T) {

	Convey("an int cast to text and back round-trips", t, func() {
		v := Value{Kind: KindInt, I: 42}
		s, err := CastTo(v, KindText)
		So(err, ShouldBeNil)
		So(s.S, ShouldEqual, "42")
		back, err := CastTo(s, KindInt)
		So(err, ShouldBeNil)
		So(back.I, ShouldEqual, 42)
	})

	Convey("a NULL value casts to NULL of the target kind, never an error", t, func() {
		v := Null(KindInt)
		out, err := CastTo(v, KindDouble)
		So(err, ShouldBeNil)
		So(out.IsNull, ShouldBeTrue)
		So(out.Kind, ShouldEqual, KindDouble)
	})

	Convey("an array value passes through the cast matrix untouched", t, func() {
		v := Value{Kind: KindInt, IsArray: true, Elems: []Value{{Kind: KindInt, I: 1}}}
		out, err := CastTo(v, KindDouble)
		So(err, ShouldBeNil)
		So(out.Kind, ShouldEqual, KindDouble)
		So(out.Elems, ShouldHaveLength, 1)
	})

}

func TestCastVarcharBoundary(t *testing.T) {

	Convey("a string within VarcharLen casts cleanly", t, func() {
		v := Value{Kind: KindText, S: "hello", VarcharLen: 10}
		out, err := CastTo(v, KindVarchar)
		So(err, ShouldBeNil)
		So(out.S, ShouldEqual, "hello")
	})

	Convey("a string exceeding VarcharLen is rejected", t, func() {
		v := Value{Kind: KindText, S: "this string is far too long", VarcharLen: 4}
		_, err := CastTo(v, KindVarchar)
		So(err, ShouldNotBeNil)
	})

}

func TestCastUUID(t *testing.T) {

	Convey("a valid UUID string casts to KindUUID", t, func() {
		v := Value{Kind: KindText, S: "123e4567-e89b-12d3-a456-426614174000"}
		out, err := CastTo(v, KindUUID)
		So(err, ShouldBeNil)
		So(out.Kind, ShouldEqual, KindUUID)
	})

	Convey("an invalid UUID string is rejected", t, func() {
		v := Value{Kind: KindText, S: "not-a-uuid"}
		_, err := CastTo(v, KindUUID)
		So(err, ShouldNotBeNil)
	})

}
