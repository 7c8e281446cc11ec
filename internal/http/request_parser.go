// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// Dashboard filters and table options arrive as query parameters; preference
// updates arrive as JSON bodies.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"orbital/internal/core"
	"orbital/internal/daterange"
	"orbital/internal/filter"
	"orbital/internal/state"
)

const maxBodyBytes = 4 << 10

var errPresetWithRange = errors.New("preset cannot be combined with from/to")

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *JSONResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequireGET is a convenience function for read-only handlers. HEAD is
// accepted too.
func RequireGET(r *http.Request) *JSONResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *JSONResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseDashboardState applies the preset, from, to and q parameters on top
// of base. An explicit from/to pair replaces the preset entirely.
func ParseDashboardState(query url.Values, base state.AppState, now time.Time) (state.AppState, error) {
	st := base

	presetParam := strings.TrimSpace(query.Get("preset"))
	fromParam := strings.TrimSpace(query.Get("from"))
	toParam := strings.TrimSpace(query.Get("to"))

	if presetParam != "" && (fromParam != "" || toParam != "") {
		return base, errPresetWithRange
	}

	if presetParam != "" {
		p, err := daterange.ParsePreset(presetParam)
		if err != nil {
			return base, fmt.Errorf("%w: %q", err, presetParam)
		}
		st = state.Apply(st, state.SetPresetDateRange{Preset: p, Now: now})
	}

	if fromParam != "" || toParam != "" {
		r := st.DateRange
		if fromParam != "" {
			from, err := parseDateParam(fromParam, false, now.Location())
			if err != nil {
				return base, fmt.Errorf("invalid from: %w", err)
			}
			r.From = from
		}
		if toParam != "" {
			to, err := parseDateParam(toParam, true, now.Location())
			if err != nil {
				return base, fmt.Errorf("invalid to: %w", err)
			}
			r.To = to
		}
		if err := r.Validate(); err != nil {
			return base, err
		}
		st = state.Apply(st, state.SetDateRange{Range: r})
	}

	if query.Has("q") {
		st = state.Apply(st, state.SetGlobalSearch{Term: sanitizeInput(query.Get("q"))})
	}

	return st, nil
}

// parseDateParam accepts RFC 3339 timestamps or YYYY-MM-DD dates. A bare date
// used as an upper bound covers the whole day.
func parseDateParam(s string, endOfDay bool, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a date (want YYYY-MM-DD or RFC 3339)", s)
	}
	if endOfDay {
		return daterange.EndOfDay(t), nil
	}
	return t, nil
}

// ParseTableQuery reads the table options: search, status, min, max, sort,
// desc, page and pageSize. Without sort the table is newest first; with a
// sort field the order is ascending unless desc is set.
func ParseTableQuery(query url.Values) (filter.Query, error) {
	q := filter.Query{
		Search: sanitizeInput(query.Get("search")),
		Sort:   filter.DefaultSort,
		Page:   filter.Page{Size: filter.DefaultPageSize},
	}

	if v := strings.TrimSpace(query.Get("status")); v != "" {
		for _, part := range strings.Split(v, ",") {
			st, err := core.ParseTransactionStatus(part)
			if err != nil {
				return q, fmt.Errorf("%w: %q", err, strings.TrimSpace(part))
			}
			q.Statuses = append(q.Statuses, st)
		}
	}

	var err error
	if q.Min, err = parseAmountParam(query, "min"); err != nil {
		return q, err
	}
	if q.Max, err = parseAmountParam(query, "max"); err != nil {
		return q, err
	}
	if q.Min != nil && q.Max != nil && q.Min.Cents > q.Max.Cents {
		return q, fmt.Errorf("min %s is greater than max %s", query.Get("min"), query.Get("max"))
	}

	if query.Has("sort") {
		field, err := filter.ParseSortField(query.Get("sort"))
		if err != nil {
			return q, fmt.Errorf("%w: %q", err, query.Get("sort"))
		}
		q.Sort = filter.SortSpec{Field: field}
	}
	if v := strings.TrimSpace(query.Get("desc")); v != "" {
		desc, err := strconv.ParseBool(v)
		if err != nil {
			return q, fmt.Errorf("invalid desc %q: must be true or false", v)
		}
		q.Sort.Desc = desc
	}

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return q, fmt.Errorf("invalid page %q: must be a non-negative integer", v)
		}
		q.Page.Index = page
	}
	if v := strings.TrimSpace(query.Get("pageSize")); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || filter.ValidatePageSize(size) != nil {
			return q, fmt.Errorf("%w: %q (allowed: %v)", filter.ErrInvalidPageSize, v, filter.PageSizes)
		}
		q.Page.Size = size
	}

	return q, nil
}

func parseAmountParam(query url.Values, key string) (*core.Money, error) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return nil, nil
	}
	cents, err := core.ParseDecimalToCents(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return &core.Money{Cents: cents}, nil
}

// PreferenceUpdate is the PUT /api/preferences body. Absent fields are left
// unchanged.
type PreferenceUpdate struct {
	Theme            *string `json:"theme"`
	SidebarCollapsed *bool   `json:"sidebarCollapsed"`
}

// Actions converts the update into reducer actions, rejecting unknown themes.
func (u PreferenceUpdate) Actions() ([]state.Action, error) {
	var actions []state.Action
	if u.Theme != nil {
		theme, err := state.ParseTheme(*u.Theme)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, *u.Theme)
		}
		actions = append(actions, state.SetTheme{Theme: theme})
	}
	if u.SidebarCollapsed != nil {
		actions = append(actions, state.SetSidebarCollapsed{Collapsed: *u.SidebarCollapsed})
	}
	return actions, nil
}

// ParsePreferenceUpdate decodes a bounded JSON body. Unknown fields are
// rejected so typos do not silently succeed.
func ParsePreferenceUpdate(r *http.Request) (PreferenceUpdate, error) {
	var u PreferenceUpdate
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&u); err != nil {
		if errors.Is(err, io.EOF) {
			return u, errors.New("request body is empty")
		}
		return u, fmt.Errorf("invalid JSON body: %w", err)
	}
	return u, nil
}
