// Package visibility строит предикаты отбора постов по правам доступа.
// Предикат собирается как дерево условий и рендерится в SQL-фрагмент
// с позиционными аргументами, не выполняя сам запрос - исполнение
// остается за репозиторием.
package visibility

import (
	"fmt"
	"strings"

	"openblog/internal/models"
)

// Expr - абстрактное условие отбора над постами
type Expr interface {
	build(b *strings.Builder, args *[]any)
}

type eqExpr struct {
	column string
	value  any
}

func (e eqExpr) build(b *strings.Builder, args *[]any) {
	*args = append(*args, e.value)
	fmt.Fprintf(b, "%s = $%d", e.column, len(*args))
}

type inExpr struct {
	column string
	values []any
}

func (e inExpr) build(b *strings.Builder, args *[]any) {
	b.WriteString(e.column)
	b.WriteString(" IN (")
	for i, v := range e.values {
		if i > 0 {
			b.WriteString(", ")
		}
		*args = append(*args, v)
		fmt.Fprintf(b, "$%d", len(*args))
	}
	b.WriteString(")")
}

type groupExpr struct {
	op    string // "AND" / "OR"
	exprs []Expr
}

func (e groupExpr) build(b *strings.Builder, args *[]any) {
	if len(e.exprs) == 0 {
		// пустая группа не ограничивает выборку
		b.WriteString("TRUE")
		return
	}
	if len(e.exprs) == 1 {
		e.exprs[0].build(b, args)
		return
	}
	b.WriteString("(")
	for i, sub := range e.exprs {
		if i > 0 {
			b.WriteString(" " + e.op + " ")
		}
		sub.build(b, args)
	}
	b.WriteString(")")
}

func Eq(column string, value any) Expr {
	return eqExpr{column: column, value: value}
}

func In(column string, values ...any) Expr {
	return inExpr{column: column, values: values}
}

func And(exprs ...Expr) Expr {
	return groupExpr{op: "AND", exprs: exprs}
}

func Or(exprs ...Expr) Expr {
	return groupExpr{op: "OR", exprs: exprs}
}

// Render возвращает SQL-фрагмент условия и его аргументы
func Render(e Expr) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 4)
	e.build(&b, &args)
	return b.String(), args
}

// Query - предикат вместе с порядком и ограничением выборки.
// Порядок фиксированный: updated_date по убыванию.
type Query struct {
	Where Expr
	Limit int
}

// SQL собирает полный запрос поверх базового SELECT.
// Предикат, затем сортировка, затем limit - именно в этом порядке.
func (q Query) SQL(base string) (string, []any) {
	where, args := Render(q.Where)

	var b strings.Builder
	b.WriteString(base)
	b.WriteString(" WHERE ")
	b.WriteString(where)
	b.WriteString(" ORDER BY updated_date DESC")
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}

	return b.String(), args
}

// For строит предикат видимости для вызывающего caller (пустая строка -
// аноним) с необязательным фильтром по автору. Пост виден, если он
// public, либо caller авторизован и пост имеет уровень users, либо
// caller сам автор поста с уровнем drafts/unlisted/private. Фильтр по
// автору добавляется через AND и не ослабляет правило видимости.
func For(caller, author string) Expr {
	or := []Expr{Eq("visibility", models.VisibilityPublic)}

	if caller != "" {
		or = append(or,
			And(
				Eq("author", caller),
				In("visibility", models.VisibilityDrafts, models.VisibilityUnlisted, models.VisibilityPrivate),
			),
			Eq("visibility", models.VisibilityUsers),
		)
	}

	cond := Or(or...)

	if author != "" {
		cond = And(Eq("author", author), cond)
	}

	return cond
}

// Visible применяет то же правило к единственному посту в памяти.
// Используется сервисом для точечного чтения, должно совпадать
// с предикатом из For.
func Visible(p *models.Post, caller string) bool {
	if p.Visibility == models.VisibilityPublic {
		return true
	}
	if caller == "" {
		return false
	}
	if p.Author == caller {
		switch p.Visibility {
		case models.VisibilityDrafts, models.VisibilityUnlisted, models.VisibilityPrivate:
			return true
		}
	}
	return p.Visibility == models.VisibilityUsers
}
