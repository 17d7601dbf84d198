package verify_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licensure/internal/domain"
	"licensure/internal/verify"
	"licensure/internal/verify/browse"
	"licensure/internal/verify/browse/browsetest"
	"licensure/internal/verify/profile"
	"licensure/pkg/requestcontext"
	"licensure/pkg/testutil"
)

type stubSessions struct {
	sess *browsetest.Session
	err  error
}

func (s stubSessions) Acquire(context.Context) (browse.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sess, nil
}

func fastProfile() profile.Profile {
	p := profile.Utah()
	p.Timing = profile.Timing{PollAttempts: 3}
	return p
}

// utahLookupSite scripts a session behaving like the live lookup: a search
// form whose submission lists one physician, whose row opens an in-frame
// detail view.
func utahLookupSite() *browsetest.Session {
	top := browsetest.NewContainer("about:blank")
	s := browsetest.NewSession(&browsetest.Window{Top: top})
	s.NavigateFunc = func(url string) error {
		last := &browsetest.Node{Tag: "input", Attrs: map[string]string{"type": "text", "name": "lastName"}}
		first := &browsetest.Node{Tag: "input", Attrs: map[string]string{"type": "text", "name": "firstName"}}
		submit := &browsetest.Node{Tag: "button", Txt: "Search"}
		submit.OnClick = func() {
			row := &browsetest.Node{Tag: "tr", Txt: "Gregory Osmond, MD - Physician & Surgeon"}
			row.OnClick = func() {
				top.Replace(url+"?detail=1",
					&browsetest.Node{Tag: "span", Txt: "License Number", Sib: &browsetest.Node{Tag: "span", Txt: "1234567-1205"}},
					&browsetest.Node{Tag: "th", Txt: "Status", Sib: &browsetest.Node{Tag: "td", Txt: "Active"}},
					&browsetest.Node{Tag: "th", Txt: "Issue Date", Sib: &browsetest.Node{Tag: "td", Txt: "05/01/2015"}},
					&browsetest.Node{Tag: "th", Txt: "Expiration Date", Sib: &browsetest.Node{Tag: "td", Txt: "01/31/2026"}},
				)
			}
			top.Append(row)
		}
		top.Replace(url,
			&browsetest.Node{Tag: "li", Txt: "Name Search"},
			last, first, submit,
		)
		return nil
	}
	return s
}

func TestServiceVerify(t *testing.T) {
	log := testutil.Logger()

	t.Run("known physician yields one normalized record", func(t *testing.T) {
		sess := utahLookupSite()
		svc := verify.New(stubSessions{sess: sess}, fastProfile(), nil, log, nil)

		now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithTime(context.Background(), now)

		records := svc.Verify(ctx, "Gregory Osmond")
		require.Len(t, records, 1)

		issue := time.Date(2015, 5, 1, 0, 0, 0, 0, time.UTC)
		expiry := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, domain.LicenseRecord{
			FullName:       "Gregory Osmond",
			State:          "UT",
			LicenseNumber:  "1234567-1205",
			Status:         "Active",
			IssueDate:      &issue,
			ExpiryDate:     &expiry,
			SourceURI:      "https://secure.utah.gov/llv/search/index.html#",
			LastVerifiedAt: now,
		}, records[0])
		assert.True(t, sess.Closed)
	})

	t.Run("unknown name yields an empty list", func(t *testing.T) {
		sess := utahLookupSite()
		svc := verify.New(stubSessions{sess: sess}, fastProfile(), nil, log, nil)

		records := svc.Verify(context.Background(), "Nobody Nowhere")
		require.NotNil(t, records)
		assert.Empty(t, records)
		assert.True(t, sess.Closed)
	})

	t.Run("empty name yields an empty list", func(t *testing.T) {
		sess := utahLookupSite()
		svc := verify.New(stubSessions{sess: sess}, fastProfile(), nil, log, nil)

		records := svc.Verify(context.Background(), "")
		require.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("navigation failure resolves to an empty list", func(t *testing.T) {
		top := browsetest.NewContainer("about:blank")
		sess := browsetest.NewSession(&browsetest.Window{Top: top})
		sess.NavigateFunc = func(string) error { return errors.New("net::ERR_NAME_NOT_RESOLVED") }
		svc := verify.New(stubSessions{sess: sess}, fastProfile(), nil, log, nil)

		records := svc.Verify(context.Background(), "Gregory Osmond")
		require.NotNil(t, records)
		assert.Empty(t, records)
		assert.True(t, sess.Closed)
	})

	t.Run("session acquisition failure resolves to an empty list", func(t *testing.T) {
		svc := verify.New(stubSessions{err: errors.New("browser not installed")}, fastProfile(), nil, log, nil)

		records := svc.Verify(context.Background(), "Gregory Osmond")
		require.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("driver panic is contained", func(t *testing.T) {
		top := browsetest.NewContainer("about:blank",
			&browsetest.Node{Tag: "button", Txt: "Search", OnClick: func() { panic("target crashed") }},
		)
		sess := browsetest.NewSession(&browsetest.Window{Top: top})
		svc := verify.New(stubSessions{sess: sess}, fastProfile(), nil, log, nil)

		records := svc.Verify(context.Background(), "Gregory Osmond")
		require.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("matched row without detail fields is discarded", func(t *testing.T) {
		top := browsetest.NewContainer("http://board.test/results",
			&browsetest.Node{Tag: "input", Attrs: map[string]string{"type": "text", "name": "lastName"}},
			&browsetest.Node{Tag: "tr", Txt: "Gregory Osmond, MD"},
		)
		sess := browsetest.NewSession(&browsetest.Window{Top: top})
		svc := verify.New(stubSessions{sess: sess}, fastProfile(), nil, log, nil)

		records := svc.Verify(context.Background(), "Gregory Osmond")
		require.NotNil(t, records)
		assert.Empty(t, records)
	})
}
