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

// Package jql implements the lexer and parser for JQL, the SQL-like query
// language accepted by the engine.
package jql

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser turns a JQL query string into a Statement, one token of pushback
// at a time, in the style of a classic hand-written recursive-descent
// parser: scan() pulls the next non-blank token, unscan() pushes the last
// one back so a lookahead can be undone.
type Parser struct {
	s   *lexer
	buf struct {
		lit Lit
		n   int // buffer size (max 1)
	}
	capturing bool
	captured  []string
}

// NewParser returns a parser reading from the given query text.
func NewParser(query string) *Parser {
	return &Parser{s: newLexer(query)}
}

func (p *Parser) scan() Lit {
	var lit Lit
	if p.buf.n != 0 {
		p.buf.n = 0
		lit = p.buf.lit
	} else {
		lit = p.s.scan()
		p.buf.lit = lit
	}
	if p.capturing {
		p.captured = append(p.captured, lit.Lit)
	}
	return lit
}

// startCapture begins recording the literal text of every token scanned
// from this point on; stopCapture joins those literals with no separator
// (e.g. "age>0"), which is the text persisted for a CHECK/DEFAULT
// expression alongside its parsed Expr.
func (p *Parser) startCapture() {
	p.capturing = true
	p.captured = nil
}

func (p *Parser) stopCapture() string {
	s := strings.Join(p.captured, "")
	p.capturing = false
	p.captured = nil
	return s
}

func (p *Parser) unscan() {
	p.buf.n = 1
	if p.capturing && len(p.captured) > 0 {
		p.captured = p.captured[:len(p.captured)-1]
	}
}

// mightBe scans one token and returns whether it matches tok, unscanning
// if it doesn't.
func (p *Parser) mightBe(tok Token) (Lit, bool) {
	lit := p.scan()
	if lit.Tok == tok {
		return lit, true
	}
	p.unscan()
	return lit, false
}

// shouldBe scans one token and errors if it doesn't match tok.
func (p *Parser) shouldBe(code Code, tok Token) (Lit, error) {
	lit := p.scan()
	if lit.Tok == tok {
		return lit, nil
	}
	return lit, p.errAt(code, lit, tok.String())
}

func (p *Parser) errAt(code Code, lit Lit, expected ...string) error {
	found := lit.Lit
	if lit.Tok == EOF {
		found = "EOF"
	}
	return &ParseError{Code: code, Line: lit.Line, Col: lit.Col, Found: found, Expected: expected}
}

// ParseExpr parses a standalone expression, such as a CHECK or DEFAULT
// clause's text reloaded from the catalog.
func ParseExpr(text string) (Expr, error) {
	p := NewParser(text)
	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if lit := p.scan(); lit.Tok != EOF {
		return nil, p.errAt(SYE_UNSUPPORTED, lit, "EOF")
	}
	return expr, nil
}

// Parse parses one JQL statement, optionally followed by a trailing ';'.
func Parse(query string) (Statement, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &EmptyError{}
	}
	p := NewParser(query)
	return p.ParseStatement()
}

// ParseStatement dispatches on the leading keyword.
func (p *Parser) ParseStatement() (Statement, error) {

	lit := p.scan()

	var stmt Statement
	var err error

	switch lit.Tok {
	case CREATE:
		stmt, err = p.parseCreate()
	case INSERT:
		stmt, err = p.parseInsert()
	case SELECT:
		stmt, err = p.parseSelect()
	case UPDATE:
		stmt, err = p.parseUpdate()
	case DELETE:
		stmt, err = p.parseDelete()
	case DROP:
		stmt, err = p.parseDrop()
	default:
		err = p.errAt(SYE_UNSUPPORTED, lit, "CREATE", "INSERT", "SELECT", "UPDATE", "DELETE", "DROP")
	}

	if err != nil {
		return &UnknownStatement{Err: err}, err
	}

	p.mightBe(SEMICOLON)
	if lit, ok := p.mightBe(EOF); !ok && lit.Tok != EOF {
		// trailing garbage after a full statement is a syntax error
		tail := p.scan()
		if tail.Tok != EOF {
			return &UnknownStatement{Err: p.errAt(SYE_UNSUPPORTED, tail, ";", "EOF")}, p.errAt(SYE_UNSUPPORTED, tail, ";", "EOF")
		}
	}

	return stmt, nil

}

// --------------------------------------------------------------------
// CREATE TABLE
// --------------------------------------------------------------------

func (p *Parser) parseCreate() (Statement, error) {

	if _, err := p.shouldBe(SYE_E_TAFCR, TABLE); err != nil {
		return nil, err
	}

	name, err := p.shouldBe(SYE_E_TNAFTA, IDENT)
	if err != nil {
		return nil, err
	}

	if _, err := p.shouldBe(SYE_U_COLDEF, LPAREN); err != nil {
		return nil, err
	}

	stmt := &CreateStatement{Table: name.Lit}

	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)

		if _, ok := p.mightBe(COMMA); ok {
			continue
		}
		break
	}

	if _, err := p.shouldBe(SYE_U_COLDEF, RPAREN); err != nil {
		return nil, err
	}

	return stmt, nil

}

func (p *Parser) parseColumnDef() (*ColumnDef, error) {

	name, err := p.shouldBe(SYE_E_CNAME, IDENT)
	if err != nil {
		return nil, err
	}

	typTok := p.scan()
	if !typTok.Tok.isType() {
		return nil, p.errAt(SYE_E_CDTYPE, typTok, "a type keyword")
	}

	col := &ColumnDef{Name: name.Lit, Type: typTok.Tok}

	if typTok.Tok == T_SERIAL {
		col.HasSequence = true
		col.IsPrimaryKey = true
		col.IsUnique = true
		col.IsNotNull = true
	}

	switch typTok.Tok {
	case T_VARCHAR, T_CHAR:
		if _, ok := p.mightBe(LPAREN); ok {
			n, err := p.shouldBe(SYE_E_VARCHAR_VALUE, L_UINT)
			if err != nil {
				return nil, err
			}
			size, _ := strconv.Atoi(n.Lit)
			if size < 1 || size > 255 {
				return nil, p.errAt(SYE_E_VARCHAR_VALUE, n, "1..255")
			}
			col.VarcharLen = size
			if _, err := p.shouldBe(SYE_E_VARCHAR_VALUE, RPAREN); err != nil {
				return nil, err
			}
		}
	case T_DECIMAL:
		if _, err := p.shouldBe(SYE_E_CDTYPE, LPAREN); err != nil {
			return nil, err
		}
		prec, err := p.shouldBe(SYE_E_CDTYPE, L_UINT)
		if err != nil {
			return nil, err
		}
		if _, err := p.shouldBe(SYE_E_CDTYPE, COMMA); err != nil {
			return nil, err
		}
		scale, err := p.shouldBe(SYE_E_CDTYPE, L_UINT)
		if err != nil {
			return nil, err
		}
		if _, err := p.shouldBe(SYE_E_CDTYPE, RPAREN); err != nil {
			return nil, err
		}
		col.DecimalP, _ = strconv.Atoi(prec.Lit)
		col.DecimalS, _ = strconv.Atoi(scale.Lit)
		if col.DecimalP <= 0 || col.DecimalS <= 0 {
			return nil, p.errAt(SYE_E_CDTYPE, prec, "precision>0 and scale>0")
		}
	}

	if _, ok := p.mightBe(LBRACK); ok {
		if _, err := p.shouldBe(SYE_E_CDTYPE, RBRACK); err != nil {
			return nil, err
		}
		col.IsArray = true
	}

	for {
		lit := p.scan()
		switch lit.Tok {
		case PRIMKEY:
			col.IsPrimaryKey = true
			col.IsUnique = true
			col.IsNotNull = true
		case UNIQUE:
			col.IsUnique = true
		case NOT:
			if _, err := p.shouldBe(SYE_E_CPRORCOM, NULL); err != nil {
				return nil, err
			}
			col.IsNotNull = true
		case INDEX:
			col.IsIndex = true
		case DEFAULT:
			p.startCapture()
			val, err := p.parseUnary()
			text := p.stopCapture()
			if err != nil {
				return nil, err
			}
			col.HasDefault = true
			col.Default = val
			col.DefaultText = text
		case CHECK:
			expr, text, err := p.parseCheckExpr()
			if err != nil {
				return nil, err
			}
			col.HasCheck = true
			col.Check = expr
			col.CheckText = text
		case FRNKEY:
			if _, err := p.shouldBe(SYE_E_CPRORCOM, REF); err != nil {
				return nil, err
			}
			ft, err := p.shouldBe(SYE_E_CPRORCOM, IDENT)
			if err != nil {
				return nil, err
			}
			if _, err := p.shouldBe(SYE_E_CPRORCOM, LPAREN); err != nil {
				return nil, err
			}
			fc, err := p.shouldBe(SYE_E_CPRORCOM, IDENT)
			if err != nil {
				return nil, err
			}
			if _, err := p.shouldBe(SYE_E_CPRORCOM, RPAREN); err != nil {
				return nil, err
			}
			col.IsForeignKey = true
			col.ForeignTable = ft.Lit
			col.ForeignColumn = fc.Lit

			for {
				on, ok := p.mightBe(ON)
				if !ok {
					break
				}
				which := p.scan()
				action, err := p.parseReferentialAction()
				if err != nil {
					return nil, err
				}
				switch which.Tok {
				case DELETE:
					col.OnDelete = action
				case UPDATE:
					col.OnUpdate = action
				default:
					return nil, p.errAt(SYE_E_CPRORCOM, on, "DELETE", "UPDATE")
				}
			}
		default:
			p.unscan()
			return col, nil
		}
	}

}

func (p *Parser) parseReferentialAction() (ReferentialAction, error) {
	lit := p.scan()
	switch lit.Tok {
	case CASCADE:
		return Cascade, nil
	case NULL:
		return SetNull, nil
	case RESTRICT:
		return Restrict, nil
	}
	return NoAction, p.errAt(SYE_E_CPRORCOM, lit, "CASCADE", "NULL", "RESTRICT")
}

// parseCheckExpr captures the raw token span of a CHECK(...) expression
// until the next top-level ',' or ')'.
func (p *Parser) parseCheckExpr() (Expr, string, error) {
	if _, err := p.shouldBe(SYE_E_CPR, LPAREN); err != nil {
		return nil, "", err
	}
	p.startCapture()
	expr, err := p.parseExpr(0)
	text := p.stopCapture()
	if err != nil {
		return nil, "", err
	}
	if _, err := p.shouldBe(SYE_E_CPR, RPAREN); err != nil {
		return nil, "", err
	}
	return expr, text, nil
}

// --------------------------------------------------------------------
// INSERT
// --------------------------------------------------------------------

func (p *Parser) parseInsert() (Statement, error) {

	if _, err := p.shouldBe(SYE_UNSUPPORTED, INTO); err != nil {
		return nil, err
	}

	name, err := p.shouldBe(SYE_E_TNAFTA, IDENT)
	if err != nil {
		return nil, err
	}

	stmt := &InsertStatement{Table: name.Lit}

	if _, ok := p.mightBe(LPAREN); ok {
		for {
			c, err := p.shouldBe(SYE_E_CNAME, IDENT)
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, c.Lit)
			if _, ok := p.mightBe(COMMA); ok {
				continue
			}
			break
		}
		if _, err := p.shouldBe(SYE_U_COLDEF, RPAREN); err != nil {
			return nil, err
		}
	}

	if _, err := p.shouldBe(SYE_E_INVALID_VALUES, VALUES); err != nil {
		return nil, err
	}

	for {
		if _, err := p.shouldBe(SYE_E_INVALID_VALUES, LPAREN); err != nil {
			return nil, err
		}
		var row []Expr
		for {
			val, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			row = append(row, val)
			if _, ok := p.mightBe(COMMA); ok {
				continue
			}
			break
		}
		if _, err := p.shouldBe(SYE_E_INVALID_VALUES, RPAREN); err != nil {
			return nil, err
		}
		stmt.Rows = append(stmt.Rows, row)
		if _, ok := p.mightBe(COMMA); ok {
			continue
		}
		break
	}

	return stmt, nil

}

// --------------------------------------------------------------------
// SELECT
// --------------------------------------------------------------------

func (p *Parser) parseSelect() (Statement, error) {

	stmt := &SelectStatement{}

	if _, ok := p.mightBe(DISCT); ok {
		stmt.Distinct = true
	}

	for {
		if _, ok := p.mightBe(MUL); ok {
			stmt.Projections = append(stmt.Projections, &Column{Name: "*"})
		} else {
			expr, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			stmt.Projections = append(stmt.Projections, expr)
		}
		if _, ok := p.mightBe(COMMA); ok {
			continue
		}
		break
	}

	if _, err := p.shouldBe(SYE_UNSUPPORTED, FROM); err != nil {
		return nil, err
	}

	table, err := p.shouldBe(SYE_E_TNAFTA, IDENT)
	if err != nil {
		return nil, err
	}
	stmt.Table = table.Lit

	if _, ok := p.mightBe(WHERE); ok {
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	if _, ok := p.mightBe(GROUP); ok {
		if _, err := p.shouldBe(SYE_UNSUPPORTED, BY); err != nil {
			return nil, err
		}
		for {
			expr, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			stmt.GroupBy = append(stmt.GroupBy, expr)
			if _, ok := p.mightBe(COMMA); ok {
				continue
			}
			break
		}
		if _, ok := p.mightBe(HAVING); ok {
			expr, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			stmt.Having = expr
		}
	}

	if _, ok := p.mightBe(ORDER); ok {
		if _, err := p.shouldBe(SYE_UNSUPPORTED, BY); err != nil {
			return nil, err
		}
		for {
			expr, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			term := OrderTerm{Expr: expr}
			if _, ok := p.mightBe(DESC); ok {
				term.Desc = true
			} else {
				p.mightBe(ASC)
			}
			stmt.OrderBy = append(stmt.OrderBy, term)
			if _, ok := p.mightBe(COMMA); ok {
				continue
			}
			break
		}
	}

	if _, ok := p.mightBe(LIM); ok {
		n, err := p.shouldBe(SYE_UNSUPPORTED, L_UINT)
		if err != nil {
			return nil, err
		}
		v, _ := strconv.Atoi(n.Lit)
		stmt.Limit = &v
	}

	if _, ok := p.mightBe(OFFSET); ok {
		n, err := p.shouldBe(SYE_UNSUPPORTED, L_UINT)
		if err != nil {
			return nil, err
		}
		v, _ := strconv.Atoi(n.Lit)
		stmt.Offset = &v
	}

	return stmt, nil

}

// --------------------------------------------------------------------
// UPDATE
// --------------------------------------------------------------------

func (p *Parser) parseUpdate() (Statement, error) {

	name, err := p.shouldBe(SYE_E_TNAFTA, IDENT)
	if err != nil {
		return nil, err
	}

	stmt := &UpdateStatement{Table: name.Lit}

	if _, err := p.shouldBe(SYE_UNSUPPORTED, SET); err != nil {
		return nil, err
	}

	for {
		col, err := p.shouldBe(SYE_E_CNAME, IDENT)
		if err != nil {
			return nil, err
		}
		assign := Assignment{Column: col.Lit}
		if _, ok := p.mightBe(LBRACK); ok {
			idx, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.shouldBe(SYE_UNSUPPORTED, RBRACK); err != nil {
				return nil, err
			}
			assign.Index = idx
		}
		if _, err := p.shouldBe(SYE_UNSUPPORTED, EQ); err != nil {
			return nil, err
		}
		val, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		assign.Value = val
		stmt.Set = append(stmt.Set, assign)
		if _, ok := p.mightBe(COMMA); ok {
			continue
		}
		break
	}

	if _, ok := p.mightBe(WHERE); ok {
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	return stmt, nil

}

// --------------------------------------------------------------------
// DELETE
// --------------------------------------------------------------------

func (p *Parser) parseDelete() (Statement, error) {

	if _, err := p.shouldBe(SYE_UNSUPPORTED, FROM); err != nil {
		return nil, err
	}

	name, err := p.shouldBe(SYE_E_TNAFTA, IDENT)
	if err != nil {
		return nil, err
	}

	stmt := &DeleteStatement{Table: name.Lit}

	if _, ok := p.mightBe(WHERE); ok {
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	return stmt, nil

}

func (p *Parser) parseDrop() (Statement, error) {
	if _, err := p.shouldBe(SYE_UNSUPPORTED, TABLE); err != nil {
		return nil, err
	}
	name, err := p.shouldBe(SYE_E_TNAFTA, IDENT)
	if err != nil {
		return nil, err
	}
	return &DropStatement{Table: name.Lit}, nil
}

// --------------------------------------------------------------------
// Expressions: precedence-climbing over Token.precedence()
// --------------------------------------------------------------------

func (p *Parser) parseExpr(minPrec int) (Expr, error) {

	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		lhs, err = p.parsePostfix(lhs)
		if err != nil {
			return nil, err
		}

		op := p.scan()
		prec := op.Tok.precedence()
		if prec == 0 || prec < minPrec {
			p.unscan()
			break
		}

		switch op.Tok {
		case BETWEEN:
			lo, err := p.parseExpr(4)
			if err != nil {
				return nil, err
			}
			if _, err := p.shouldBe(SYE_UNSUPPORTED, AND); err != nil {
				return nil, err
			}
			hi, err := p.parseExpr(4)
			if err != nil {
				return nil, err
			}
			lhs = &Between{Lhs: lhs, Lo: lo, Hi: hi}
			continue
		case IN:
			if _, err := p.shouldBe(SYE_UNSUPPORTED, LPAREN); err != nil {
				return nil, err
			}
			var list []Expr
			for {
				v, err := p.parseExpr(0)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
				if _, ok := p.mightBe(COMMA); ok {
					continue
				}
				break
			}
			if _, err := p.shouldBe(SYE_UNSUPPORTED, RPAREN); err != nil {
				return nil, err
			}
			lhs = &In{Lhs: lhs, List: list}
			continue
		case LIKE:
			pat, err := p.parseExpr(prec + 1)
			if err != nil {
				return nil, err
			}
			lhs = &Like{Lhs: lhs, Pattern: pat}
			continue
		case IS:
			not := false
			if _, ok := p.mightBe(NOT); ok {
				not = true
			}
			if _, err := p.shouldBe(SYE_UNSUPPORTED, NULL); err != nil {
				return nil, err
			}
			lhs = &IsNull{Lhs: lhs, Not: not}
			continue
		}

		rhs, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		lhs = &BinaryOp{Op: op.Tok, Lhs: lhs, Rhs: rhs}
	}

	return lhs, nil

}

func (p *Parser) parseUnary() (Expr, error) {

	lit := p.scan()

	switch lit.Tok {
	case NOT:
		// NOT binds looser than comparisons (OR < AND < NOT < comparisons),
		// so its operand climbs through comparisons/arithmetic via
		// parseExpr at the comparison precedence level rather than
		// recursing into parseUnary, which would stop at parsePrimary and
		// never reach a comparison: "NOT age = 30" must parse as
		// "NOT (age = 30)", not "(NOT age) = 30".
		rhs, err := p.parseExpr(3)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: NOT, Rhs: rhs}, nil
	case SUB:
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: SUB, Rhs: rhs}, nil
	}

	p.unscan()
	return p.parsePrimary()

}

func (p *Parser) parsePostfix(lhs Expr) (Expr, error) {
	for {
		if _, ok := p.mightBe(LBRACK); ok {
			idx, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.shouldBe(SYE_UNSUPPORTED, RBRACK); err != nil {
				return nil, err
			}
			lhs = &ArrayIndex{Column: lhs, Index: idx}
			continue
		}
		return lhs, nil
	}
}

func (p *Parser) parsePrimary() (Expr, error) {

	lit := p.scan()

	switch lit.Tok {
	case L_UINT, L_INT, L_FLOAT, L_DOUBLE, L_STRING, L_BOOL, NULL:
		return p.literalFrom(lit)
	case LPAREN:
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.shouldBe(SYE_UNSUPPORTED, RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case LBRACE:
		var elems []Expr
		if _, ok := p.mightBe(RBRACE); ok {
			return &ArrayLiteral{}, nil
		}
		for {
			v, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
			if _, ok := p.mightBe(COMMA); ok {
				continue
			}
			break
		}
		if _, err := p.shouldBe(SYE_UNSUPPORTED, RBRACE); err != nil {
			return nil, err
		}
		return &ArrayLiteral{Elems: elems}, nil
	case IDENT:
		name := lit.Lit
		if strings.EqualFold(name, "CAST") {
			if _, ok := p.mightBe(LPAREN); ok {
				return p.parseCastExpr(true)
			}
		}
		if _, ok := p.mightBe(LPAREN); ok {
			var args []Expr
			if _, ok := p.mightBe(RPAREN); ok {
				return &FunctionCall{Name: strings.ToLower(name)}, nil
			}
			for {
				v, err := p.parseExpr(0)
				if err != nil {
					return nil, err
				}
				args = append(args, v)
				if _, ok := p.mightBe(COMMA); ok {
					continue
				}
				break
			}
			if _, err := p.shouldBe(SYE_UNSUPPORTED, RPAREN); err != nil {
				return nil, err
			}
			return &FunctionCall{Name: strings.ToLower(name), Args: args}, nil
		}
		return &Column{Name: name}, nil
	}

	return nil, p.errAt(SYE_UNSUPPORTED, lit, "an expression")

}

// parseCastExpr parses the remainder of CAST(expr AS type) having already
// consumed CAST and, if lparenConsumed, the opening '('.
func (p *Parser) parseCastExpr(lparenConsumed bool) (Expr, error) {
	if !lparenConsumed {
		if _, err := p.shouldBe(SYE_UNSUPPORTED, LPAREN); err != nil {
			return nil, err
		}
	}
	val, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.shouldBe(SYE_UNSUPPORTED, AS); err != nil {
		return nil, err
	}
	typTok := p.scan()
	if !typTok.Tok.isType() {
		return nil, p.errAt(SYE_E_CDTYPE, typTok, "a type keyword")
	}
	if _, err := p.shouldBe(SYE_UNSUPPORTED, RPAREN); err != nil {
		return nil, err
	}
	return &Cast{Value: val, Type: typTok.Tok}, nil
}

func (p *Parser) literalFrom(lit Lit) (Expr, error) {
	switch lit.Tok {
	case NULL:
		return &Literal{Tok: NULL, Val: nil}, nil
	case L_UINT:
		v, err := strconv.ParseUint(lit.Lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q", lit.Lit)
		}
		return &Literal{Tok: L_UINT, Val: v}, nil
	case L_FLOAT:
		v, err := strconv.ParseFloat(lit.Lit, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", lit.Lit)
		}
		return &Literal{Tok: L_FLOAT, Val: float32(v)}, nil
	case L_DOUBLE:
		v, err := strconv.ParseFloat(lit.Lit, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid double literal %q", lit.Lit)
		}
		return &Literal{Tok: L_DOUBLE, Val: v}, nil
	case L_STRING:
		return &Literal{Tok: L_STRING, Val: lit.Val}, nil
	case L_BOOL:
		return &Literal{Tok: L_BOOL, Val: lit.Val}, nil
	}
	return nil, fmt.Errorf("unreachable literal token %s", lit.Tok)
}
