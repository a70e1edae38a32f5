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

package eval

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLike(t *testing.T) {

	Convey("% matches any run of characters, including none", t, func() {
		So(Like("hello", "h%"), ShouldBeTrue)
		So(Like("hello", "%o"), ShouldBeTrue)
		So(Like("hello", "%"), ShouldBeTrue)
		So(Like("", "%"), ShouldBeTrue)
		So(Like("hello", "h%x"), ShouldBeFalse)
	})

	Convey("* is an alias for %", t, func() {
		So(Like("hello", "h*"), ShouldBeTrue)
	})

	Convey("_ matches exactly one character", t, func() {
		So(Like("cat", "c_t"), ShouldBeTrue)
		So(Like("ct", "c_t"), ShouldBeFalse)
		So(Like("caat", "c_t"), ShouldBeFalse)
	})

	Convey("[...] matches a character class, with ranges and negation", t, func() {
		So(Like("cat", "[bc]at"), ShouldBeTrue)
		So(Like("hat", "[bc]at"), ShouldBeFalse)
		So(Like("5", "[0-9]"), ShouldBeTrue)
		So(Like("x", "[0-9]"), ShouldBeFalse)
		So(Like("x", "[^0-9]"), ShouldBeTrue)
	})

	Convey("\\x escapes a pattern metacharacter", t, func() {
		So(Like("50%", `50\%`), ShouldBeTrue)
		So(Like("50x", `50\%`), ShouldBeFalse)
	})

	Convey("a leading (?i) makes the match case-insensitive", t, func() {
		So(Like("HELLO", "(?i)hello"), ShouldBeTrue)
		So(Like("HELLO", "hello"), ShouldBeFalse)
	})

}
