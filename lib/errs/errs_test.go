package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorAt(t *testing.T) {
	base := &ParseError{Code: InvalidFormat, Expected: "email", Raw: "nope"}
	located := base.At("ContactInfo", "emailAddress")
	require.Empty(t, base.Entity)
	require.Equal(t, "ContactInfo", located.Entity)
	require.Equal(t, "emailAddress", located.Field)

	kept := (&ParseError{Code: TemporalRange, Field: "year"}).At("Profile", "birthDate")
	require.Equal(t, "year", kept.Field)
	require.Equal(t, "Profile", kept.Entity)
}

func TestErrorMessages(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{
			err:  &ParseError{Code: KindMismatch, Expected: "company", Actual: "fsd_profile"},
			want: "parse kind_mismatch: expected company, got fsd_profile",
		},
		{
			err:  &ParseError{Code: InvalidFormat, Entity: "ContactInfo", Field: "emailAddress", Expected: "email", Raw: "x"},
			want: `parse invalid_format at ContactInfo.emailAddress: not a valid email (raw "x")`,
		},
		{
			err:  &SchemaError{Code: ConflictingField, Field: "birthDate", Fragments: []string{"profileView", "contactInfo"}},
			want: "schema conflicting_field at .birthDate (fragments profileView, contactInfo)",
		},
		{
			err:  &TransportError{Endpoint: "profileView", Status: 429, Message: "slow down"},
			want: "transport profileView: status 429: slow down",
		},
		{
			err:  &AuthenticationError{Endpoint: "contactInfo", Status: 401},
			want: "authentication rejected by contactInfo (status 401)",
		},
	}
	for _, test := range testCases {
		require.Equal(t, test.want, test.err.Error())
	}
}

func TestHelpers(t *testing.T) {
	wrapped := fmt.Errorf("element 3: %w", &SchemaError{Code: MissingField, Entity: "Skill", Field: "name"})
	require.True(t, IsSchemaCode(wrapped, MissingField))
	require.False(t, IsSchemaCode(wrapped, ConflictingField))
	require.False(t, IsParseCode(wrapped, InvalidFormat))

	auth := fmt.Errorf("get profile: %w", &AuthenticationError{Endpoint: "profileView", Status: 403})
	require.True(t, IsAuthentication(auth))

	cause := errors.New("connection reset")
	terr := &TransportError{Endpoint: "company", Err: cause}
	require.ErrorIs(t, terr, cause)
	require.False(t, terr.RateLimited())
	require.True(t, (&TransportError{Status: 429}).RateLimited())
}
