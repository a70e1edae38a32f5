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

package engine

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func openTestDB(t *testing.T) *Database {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func mustOK(t *testing.T, db *Database, query string) *Result {
	t.Helper()
	res, err := db.Process(query)
	if err != nil {
		t.Fatalf("process %q: %v", query, err)
	}
	if res.Exec.Code != CodeOK {
		t.Fatalf("process %q: %s", query, res.Exec.Message)
	}
	return res
}

func TestCreateInsertSelectRoundTrip(t *testing.T) {

	Convey("a created table accepts inserts and returns them from SELECT", t, func() {
		db := openTestDB(t)

		mustOK(t, db, `CREATE TABLE accounts (id INT PRIMKEY, name TEXT, balance INT);`)
		mustOK(t, db, `INSERT INTO accounts (id, name, balance) VALUES (1, 'alice', 100), (2, 'bob', 50);`)

		res, err := db.Process(`SELECT * FROM accounts WHERE balance > 60;`)
		So(err, ShouldBeNil)
		So(res.Exec.Code, ShouldEqual, CodeOK)
		So(res.Exec.Rows, ShouldHaveLength, 1)
		So(res.Exec.Rows[0][1].S, ShouldEqual, "alice")
	})

}

func TestSelectOrderByLimitOffset(t *testing.T) {

	Convey("ORDER BY DESC with LIMIT/OFFSET returns the expected page", t, func() {
		db := openTestDB(t)
		mustOK(t, db, `CREATE TABLE scores (id INT PRIMKEY, points INT);`)
		for i := 1; i <= 5; i++ {
			mustOK(t, db, `INSERT INTO scores (id, points) VALUES (`+itoa(i)+`, `+itoa(i*10)+`);`)
		}

		res, err := db.Process(`SELECT * FROM scores ORDER BY points DESC LIM 2 OFFSET 1;`)
		So(err, ShouldBeNil)
		So(res.Exec.Rows, ShouldHaveLength, 2)
		So(res.Exec.Rows[0][1].I, ShouldEqual, 40)
		So(res.Exec.Rows[1][1].I, ShouldEqual, 30)
	})

}

func TestSelectLike(t *testing.T) {

	Convey("LIKE filters rows by pattern", t, func() {
		db := openTestDB(t)
		mustOK(t, db, `CREATE TABLE people (id INT PRIMKEY, name TEXT);`)
		mustOK(t, db, `INSERT INTO people (id, name) VALUES (1, 'alice'), (2, 'alex'), (3, 'bob');`)

		res, err := db.Process(`SELECT * FROM people WHERE name LIKE 'al%';`)
		So(err, ShouldBeNil)
		So(res.Exec.Rows, ShouldHaveLength, 2)
	})

}

func TestUpdateArrayElementAssignment(t *testing.T) {

	Convey("UPDATE can assign into a single array element", t, func() {
		db := openTestDB(t)
		mustOK(t, db, `CREATE TABLE tagged (id INT PRIMKEY, tags TEXT[]);`)
		mustOK(t, db, `INSERT INTO tagged (id, tags) VALUES (1, {'a', 'b', 'c'});`)

		mustOK(t, db, `UPDATE tagged SET tags[2] = 'z' WHERE id = 1;`)

		res, err := db.Process(`SELECT * FROM tagged WHERE id = 1;`)
		So(err, ShouldBeNil)
		So(res.Exec.Rows[0][1].Elems[1].S, ShouldEqual, "z")
	})

}

func TestDeleteCascadesToDependents(t *testing.T) {

	Convey("deleting a referenced row cascades to its dependents", t, func() {
		db := openTestDB(t)
		mustOK(t, db, `CREATE TABLE customers (id INT PRIMKEY, name TEXT);`)
		mustOK(t, db, `CREATE TABLE orders (id INT PRIMKEY, customer_id INT FRNKEY REF customers(id) ON DELETE CASCADE);`)

		mustOK(t, db, `INSERT INTO customers (id, name) VALUES (1, 'alice');`)
		mustOK(t, db, `INSERT INTO orders (id, customer_id) VALUES (10, 1), (11, 1);`)

		mustOK(t, db, `DELETE FROM customers WHERE id = 1;`)

		res, err := db.Process(`SELECT * FROM orders;`)
		So(err, ShouldBeNil)
		So(res.Exec.Rows, ShouldBeEmpty)
	})

}

func TestAggregateGroupByHaving(t *testing.T) {

	Convey("GROUP BY with HAVING filters aggregated buckets", t, func() {
		db := openTestDB(t)
		mustOK(t, db, `CREATE TABLE sales (id INT PRIMKEY, region TEXT, amount INT);`)
		mustOK(t, db, `INSERT INTO sales (id, region, amount) VALUES (1, 'east', 10), (2, 'east', 20), (3, 'west', 5);`)

		res, err := db.Process(`SELECT region, SUM(amount) FROM sales GROUP BY region HAVING SUM(amount) > 15;`)
		So(err, ShouldBeNil)
		So(res.Exec.Rows, ShouldHaveLength, 1)
		So(res.Exec.Rows[0][0].S, ShouldEqual, "east")
		So(res.Exec.Rows[0][1].F64, ShouldEqual, 30)
	})

}

func TestUniqueConstraintViolation(t *testing.T) {

	Convey("inserting a duplicate UNIQUE value fails with CodeError", t, func() {
		db := openTestDB(t)
		mustOK(t, db, `CREATE TABLE users (id INT PRIMKEY, email TEXT UNIQUE);`)
		mustOK(t, db, `INSERT INTO users (id, email) VALUES (1, 'a@example.com');`)

		res, err := db.Process(`INSERT INTO users (id, email) VALUES (2, 'a@example.com');`)
		So(err, ShouldBeNil)
		So(res.Exec.Code, ShouldEqual, CodeError)
	})

}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
