package query

import (
	"strconv"

	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/constraint"
	"github.com/ImperishableMe/Oblivious-Multi-Way-Band-Joins-sub002/internal/core"
)

// Parse tokenizes and parses sql into a ParsedQuery. It accepts exactly:
//
//	SELECT * FROM <table> AS <alias> (, <table> AS <alias>)*
//	[WHERE <cond> (AND <cond>)*] [;]
//
// where each <cond> is either a filter (`alias.col OP literal`) or a join
// (`alias.col OP alias.col [(+|-) integer]`). This mirrors
// original_source/impl/src/app/query/query_parser.h's parse_select /
// parse_from / parse_where structure.
func Parse(sql string) (ParsedQuery, error) {
	tokens, err := Tokenize(sql)
	if err != nil {
		return ParsedQuery{}, err
	}
	p := &parser{tokens: tokens}
	return p.parse()
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) parse() (ParsedQuery, error) {
	var q ParsedQuery

	if err := p.expect(Select, "expected SELECT"); err != nil {
		return q, err
	}
	if err := p.expect(Star, "this dialect only supports SELECT *"); err != nil {
		return q, err
	}
	if err := p.expect(From, "expected FROM"); err != nil {
		return q, err
	}

	tables, err := p.parseFrom()
	if err != nil {
		return q, err
	}
	q.Tables = tables

	if p.current().Type == Where {
		p.consume()
		joins, filters, err := p.parseWhere()
		if err != nil {
			return q, err
		}
		q.Joins = joins
		q.Filters = filters
	}

	if p.current().Type == Semicolon {
		p.consume()
	}
	if p.current().Type != EndOfQuery {
		return q, &ParseError{Position: p.current().Position, Message: "unexpected trailing input"}
	}

	return q, nil
}

func (p *parser) parseFrom() ([]TableRef, error) {
	var tables []TableRef
	for {
		if p.current().Type != Identifier {
			return nil, &ParseError{Position: p.current().Position, Message: "expected table name"}
		}
		table := p.consume().Value

		if err := p.expect(As, "expected AS"); err != nil {
			return nil, err
		}
		if p.current().Type != Identifier {
			return nil, &ParseError{Position: p.current().Position, Message: "expected alias after AS"}
		}
		alias := p.consume().Value

		tables = append(tables, TableRef{Alias: alias, Table: table})

		if p.current().Type == Comma {
			p.consume()
			continue
		}
		break
	}
	return tables, nil
}

// parseWhere reads a conjunction of conditions, classifying each as a join
// (two qualified names) or a filter (qualified name op literal), and
// merges join conditions sharing a (source, target) column pair via
// mergeJoins — the Go counterpart of query_parser.h's merge_join_conditions.
func (p *parser) parseWhere() ([]constraint.Constraint, []FilterPredicate, error) {
	var rawJoins []constraint.Constraint
	var filters []FilterPredicate

	for {
		join, filter, isJoin, err := p.parseCondition()
		if err != nil {
			return nil, nil, err
		}
		if isJoin {
			rawJoins = append(rawJoins, join)
		} else {
			filters = append(filters, filter)
		}

		if p.current().Type == And {
			p.consume()
			continue
		}
		break
	}

	merged, err := mergeJoins(rawJoins)
	if err != nil {
		return nil, nil, err
	}
	return merged, filters, nil
}

// parseCondition parses one `<qualified> OP <qualified-or-literal>
// [(+|-) integer]` condition.
func (p *parser) parseCondition() (constraint.Constraint, FilterPredicate, bool, error) {
	leftAlias, leftCol, err := p.parseQualified()
	if err != nil {
		return constraint.Constraint{}, FilterPredicate{}, false, err
	}

	op, err := p.parseOp()
	if err != nil {
		return constraint.Constraint{}, FilterPredicate{}, false, err
	}

	if p.current().Type == Identifier {
		rightAlias, rightCol, err := p.parseQualified()
		if err != nil {
			return constraint.Constraint{}, FilterPredicate{}, false, err
		}

		deviation := int32(0)
		if p.current().Type == Plus || p.current().Type == Minus {
			sign := int32(1)
			if p.current().Type == Minus {
				sign = -1
			}
			p.consume()
			if p.current().Type != Number {
				return constraint.Constraint{}, FilterPredicate{}, false,
					&ParseError{Position: p.current().Position, Message: "expected integer deviation literal"}
			}
			n, convErr := strconv.Atoi(p.consume().Value)
			if convErr != nil {
				return constraint.Constraint{}, FilterPredicate{}, false,
					&ParseError{Position: p.current().Position, Message: "invalid deviation literal"}
			}
			deviation = sign * int32(n)
		}

		c, err := opToConstraint(leftAlias, leftCol, rightAlias, rightCol, op, deviation)
		if err != nil {
			return constraint.Constraint{}, FilterPredicate{}, false, err
		}
		return c, FilterPredicate{}, true, nil
	}

	litSign := 1
	if p.current().Type == Plus || p.current().Type == Minus {
		if p.current().Type == Minus {
			litSign = -1
		}
		p.consume()
	}

	if p.current().Type != Number {
		return constraint.Constraint{}, FilterPredicate{}, false,
			&ParseError{Position: p.current().Position, Message: "expected a literal or a qualified column name"}
	}
	litTok := p.consume()
	lit, convErr := strconv.Atoi(litTok.Value)
	if convErr != nil {
		return constraint.Constraint{}, FilterPredicate{}, false,
			&ParseError{Position: litTok.Position, Message: "invalid integer literal"}
	}

	return constraint.Constraint{}, FilterPredicate{
		Alias: leftAlias, Column: leftCol, Op: op, Literal: int32(litSign * lit),
	}, false, nil
}

func (p *parser) parseQualified() (alias, column string, err error) {
	if p.current().Type != Identifier {
		return "", "", &ParseError{Position: p.current().Position, Message: "expected identifier"}
	}
	alias = p.consume().Value
	if err := p.expect(Dot, "expected '.' in qualified column name"); err != nil {
		return "", "", err
	}
	if p.current().Type != Identifier {
		return "", "", &ParseError{Position: p.current().Position, Message: "expected column name after '.'"}
	}
	column = p.consume().Value
	return alias, column, nil
}

func (p *parser) parseOp() (CompareOp, error) {
	tok := p.current()
	switch tok.Type {
	case Equals:
		p.consume()
		return OpEquals, nil
	case GreaterEq:
		p.consume()
		return OpGreaterEq, nil
	case Greater:
		p.consume()
		return OpGreater, nil
	case LessEq:
		p.consume()
		return OpLessEq, nil
	case Less:
		p.consume()
		return OpLess, nil
	case NotEquals:
		p.consume()
		return OpNotEquals, nil
	default:
		return 0, &ParseError{Position: tok.Position, Message: "expected a comparison operator"}
	}
}

// opToConstraint turns a parsed join condition into a band constraint,
// exactly as operator_to_constraint does, except `!=`/`<>` is rejected with
// UnsupportedPredicate instead of silently building an empty range.
func opToConstraint(leftAlias, leftCol, rightAlias, rightCol string, op CompareOp, deviation int32) (constraint.Constraint, error) {
	switch op {
	case OpEquals:
		return constraint.Band(leftAlias, leftCol, rightAlias, rightCol,
			constraint.Bound{Deviation: deviation, Equality: core.EQ},
			constraint.Bound{Deviation: deviation, Equality: core.EQ}), nil
	case OpGreaterEq:
		return constraint.Band(leftAlias, leftCol, rightAlias, rightCol,
			constraint.Bound{Deviation: deviation, Equality: core.EQ},
			constraint.Bound{Deviation: core.PosInf, Equality: core.EQ}), nil
	case OpGreater:
		return constraint.Band(leftAlias, leftCol, rightAlias, rightCol,
			constraint.Bound{Deviation: deviation, Equality: core.NEQ},
			constraint.Bound{Deviation: core.PosInf, Equality: core.EQ}), nil
	case OpLessEq:
		return constraint.Band(leftAlias, leftCol, rightAlias, rightCol,
			constraint.Bound{Deviation: core.NegInf, Equality: core.EQ},
			constraint.Bound{Deviation: deviation, Equality: core.EQ}), nil
	case OpLess:
		return constraint.Band(leftAlias, leftCol, rightAlias, rightCol,
			constraint.Bound{Deviation: core.NegInf, Equality: core.EQ},
			constraint.Bound{Deviation: deviation, Equality: core.NEQ}), nil
	case OpNotEquals:
		return constraint.Constraint{}, &UnsupportedPredicate{
			Condition: leftAlias + "." + leftCol + " != " + rightAlias + "." + rightCol,
			Reason:    "join conditions do not support != or <>; express the join as a band and filter separately",
		}
	default:
		return constraint.Constraint{}, &ParseError{Message: "unknown comparison operator"}
	}
}

// mergeJoins intersects join conditions that share a (source, target)
// column pair, in either orientation, into a single band constraint, per
// original_source/impl/src/app/query/condition_merger.cpp's
// can_merge/merge.
func mergeJoins(raw []constraint.Constraint) ([]constraint.Constraint, error) {
	type key struct{ srcTable, srcCol, tgtTable, tgtCol string }
	merged := make(map[key]constraint.Constraint)
	var order []key

	for _, c := range raw {
		k := key{c.SrcTable, c.SrcColumn, c.TgtTable, c.TgtColumn}
		rk := key{c.TgtTable, c.TgtColumn, c.SrcTable, c.SrcColumn}

		if existing, ok := merged[k]; ok {
			result, ok := constraint.Intersect(existing, c)
			if !ok {
				return nil, &EmptyIntersection{SrcTable: c.SrcTable, SrcColumn: c.SrcColumn, TgtTable: c.TgtTable, TgtColumn: c.TgtColumn}
			}
			merged[k] = result
			continue
		}
		if existing, ok := merged[rk]; ok {
			result, ok := constraint.Intersect(existing, c.Reverse())
			if !ok {
				return nil, &EmptyIntersection{SrcTable: c.SrcTable, SrcColumn: c.SrcColumn, TgtTable: c.TgtTable, TgtColumn: c.TgtColumn}
			}
			merged[rk] = result
			continue
		}

		merged[k] = c
		order = append(order, k)
	}

	out := make([]constraint.Constraint, 0, len(order))
	for _, k := range order {
		out = append(out, merged[k])
	}
	return out, nil
}

func (p *parser) current() Token {
	return p.tokens[p.pos]
}

func (p *parser) consume() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(t TokenType, message string) error {
	if p.current().Type != t {
		return &ParseError{Position: p.current().Position, Message: message}
	}
	p.consume()
	return nil
}
