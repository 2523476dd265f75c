package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sanitizeTarget struct {
	Name  string
	Note  *string
	Empty *string
	count int
}

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := LoginRequest{
		DiscordID: "  238004412830138369  ",
		LoginCode: " AB12CD ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "238004412830138369", req.DiscordID)
	assert.Equal(t, "AB12CD", req.LoginCode)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := LoginRequest{DiscordID: "1", LoginCode: "<script>alert('x')</script>"}
	SanitizeStruct(&req)

	assert.Contains(t, req.LoginCode, "&lt;script&gt;")
	assert.NotContains(t, req.LoginCode, "<script>")
}

func TestSanitizeStruct_NamedStringType(t *testing.T) {
	req := StartGameRequest{Bet: " 10.50 "}
	SanitizeStruct(&req)
	assert.Equal(t, Amount("10.50"), req.Bet)
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	note := "  <b>hi</b>  "
	v := sanitizeTarget{Name: " x ", Note: &note, count: 3}
	SanitizeStruct(&v)

	assert.Equal(t, "x", v.Name)
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", *v.Note)
	assert.Nil(t, v.Empty)
	assert.Equal(t, 3, v.count)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"AB12CD",
		"code_002",
		"a.b.c",
		"simple123",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"AB 12",       // space
		"code<001>",   // angle brackets
		"code;DROP",   // semicolon
		"",            // empty
		"hello world", // space
		"code\n001",   // newline
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}
