package webutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"focustube/internal/apperr"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: query required", apperr.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: video not found", apperr.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: timer already running", apperr.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: youtube returned status 403", apperr.ErrUpstream), http.StatusInternalServerError},
		{fmt.Errorf("%w: OPENROUTER_API_KEY not configured", apperr.ErrConfig), http.StatusInternalServerError},
		{errors.New("something else"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := StatusForError(c.err); got != c.want {
			t.Errorf("StatusForError(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
