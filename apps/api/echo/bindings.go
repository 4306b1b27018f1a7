package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
)

var searchParam = "q"

type SearchQuery struct {
	Term string
}

func (q *SearchQuery) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[searchParam]
	if !ok || len(val) == 0 {
		return
	}
	q.Term = strings.TrimSpace(val[0])
}
