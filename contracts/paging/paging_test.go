package paging

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		limit   int
		offset  int
		want    Page
		wantErr error
	}{
		{name: "default limit", limit: 0, offset: 0, want: Page{Limit: 20}},
		{name: "explicit", limit: 5, offset: 10, want: Page{Limit: 5, Offset: 10}},
		{name: "max", limit: 100, want: Page{Limit: 100}},
		{name: "too large", limit: 101, wantErr: ErrInvalidLimit},
		{name: "negative limit", limit: -1, wantErr: ErrInvalidLimit},
		{name: "negative offset", limit: 10, offset: -1, wantErr: ErrInvalidOffset},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.limit, tc.offset)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
