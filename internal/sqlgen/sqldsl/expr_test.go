package sqldsl

import "testing"

func TestExpr_SQL(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"ident", Ident("people"), `"people"`},
		{"ident with quote", Ident(`we"ird`), `"we""ird"`},
		{"qualified", Qualified{Table: "people", Column: "name"}, `"people"."name"`},
		{"literal", Lit("Employee"), `'Employee'`},
		{"literal with quote", Lit("O'Brien"), `'O''Brien'`},
		{"raw", Raw("1 = 1"), "1 = 1"},
		{"new ref", NewRef("name"), `NEW."name"`},
		{"old ref", OldRef("id"), `OLD."id"`},
		{"nextval", NextVal("people_id_seq"), `nextval('people_id_seq')`},
		{"currval", CurrVal("people_id_seq"), `currval('people_id_seq')`},
		{
			"call",
			Call{Name: "GetInsertedPerson", Args: []Expr{CurrVal("people_id_seq")}},
			`"GetInsertedPerson"(currval('people_id_seq'))`,
		},
		{
			"field select",
			Field{Row: Raw("r"), Name: "salary"},
			`(r)."salary"`,
		},
		{
			"eq",
			Eq{Left: Qualified{Table: "p", Column: "id"}, Right: OldRef("id")},
			`"p"."id" = OLD."id"`,
		},
		{"empty and", And{}, "TRUE"},
		{"single and", And{Raw("a = 1")}, "a = 1"},
		{"and", And{Raw("a = 1"), Raw("b = 2")}, "a = 1 AND b = 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.SQL(); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStmt_SQL(t *testing.T) {
	tests := []struct {
		name string
		expr interface{ SQL() string }
		want string
	}{
		{
			"insert",
			InsertStmt{
				Table:   Ident("people"),
				Columns: []Ident{"id", "name"},
				Values:  []Expr{NextVal("people_id_seq"), NewRef("name")},
			},
			`INSERT INTO "people" ("id", "name") VALUES (nextval('people_id_seq'), NEW."name")`,
		},
		{
			"insert returning",
			InsertStmt{
				Table:     Ident("t"),
				Columns:   []Ident{"id"},
				Values:    []Expr{Raw("1")},
				Returning: []Expr{Ident("id")},
			},
			`INSERT INTO "t" ("id") VALUES (1) RETURNING "id"`,
		},
		{
			"update",
			UpdateStmt{
				Table: Ident("employees"),
				Set:   []Assignment{{Column: "salary", Value: NewRef("salary")}},
				Where: Eq{Left: Ident("person_id"), Right: OldRef("id")},
			},
			`UPDATE "employees" SET "salary" = NEW."salary" WHERE "person_id" = OLD."id"`,
		},
		{
			"delete",
			DeleteStmt{
				Table: Ident("employees"),
				Where: Eq{Left: Ident("person_id"), Right: OldRef("id")},
			},
			`DELETE FROM "employees" WHERE "person_id" = OLD."id"`,
		},
		{
			"select",
			SelectStmt{
				Columns: []Expr{Raw("*")},
				From:    []Ident{"people_view"},
				Where:   Eq{Left: Ident("id"), Right: Raw("$1")},
			},
			`SELECT * FROM "people_view" WHERE "id" = $1`,
		},
		{
			"scalar subquery",
			Scalar{Query: SelectStmt{
				Columns: []Expr{Call{Name: "f", Args: []Expr{Raw("1")}}},
				From:    []Ident{"t"},
			}},
			`(SELECT "f"(1) FROM "t")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.SQL(); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}
