package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute_EqualTexts(t *testing.T) {
	for _, text := range []string{"", "a\nb\nc\n", "no trailing newline"} {
		r := Compute(text, text)
		assert.Equal(t, 0, r.Added)
		assert.Equal(t, 0, r.Removed)
		assert.Empty(t, r.Patch)
	}
}

func TestCompute_AddedAndRemoved(t *testing.T) {
	old := "a\nb\nc\n"
	new := "a\nB\nc\nd\n"

	r := Compute(old, new)
	assert.Equal(t, 2, r.Added, "changed line + appended line")
	assert.Equal(t, 1, r.Removed, "changed line")
	assert.Contains(t, r.Patch, "+B\n")
	assert.Contains(t, r.Patch, "-b\n")
	assert.Contains(t, r.Patch, "+d\n")
}

func TestCompute_AntiSymmetric(t *testing.T) {
	cases := [][2]string{
		{"a\nb\nc\n", "a\nB\nc\nd\n"},
		{"", "one\ntwo\n"},
		{"x\ny\nz\n", ""},
		{"1\n2\n3\n4\n5\n", "1\n3\n5\n6\n"},
	}
	for _, c := range cases {
		fwd := Compute(c[0], c[1])
		rev := Compute(c[1], c[0])
		assert.Equal(t, fwd.Added, rev.Removed)
		assert.Equal(t, fwd.Removed, rev.Added)
	}
}

func TestCompute_EmptyOldText(t *testing.T) {
	r := Compute("", "a\nb\n")
	assert.Equal(t, 2, r.Added)
	assert.Equal(t, 0, r.Removed)
}

func TestCompute_CountsExcludeHeaders(t *testing.T) {
	r := Compute("a\n", "b\n")
	// One line replaced: header lines ("---", "+++", "@@") must not count.
	assert.Equal(t, 1, r.Added)
	assert.Equal(t, 1, r.Removed)

	var plus, minus int
	for _, line := range strings.Split(r.Patch, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			plus++
		case strings.HasPrefix(line, "-"):
			minus++
		}
	}
	assert.Equal(t, r.Added, plus)
	assert.Equal(t, r.Removed, minus)
}

func TestCompute_Deterministic(t *testing.T) {
	old := "func a() {}\nfunc b() {}\n"
	new := "func a() {}\nfunc c() {}\nfunc b() {}\n"

	first := Compute(old, new)
	second := Compute(old, new)
	assert.Equal(t, first, second)
}

func TestCompute_HunkContext(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"
	new := "1\n2\n3\n4\n5\n6\n7\n8\n9\nten\n"

	r := Compute(old, new)
	assert.Contains(t, r.Patch, "@@")
	// Only three context lines precede the change.
	assert.NotContains(t, r.Patch, " 1\n")
	assert.Contains(t, r.Patch, " 7\n")
}

func TestSplitKeepEnds(t *testing.T) {
	assert.Nil(t, splitKeepEnds(""))
	assert.Equal(t, []string{"a\n", "b\n"}, splitKeepEnds("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b"}, splitKeepEnds("a\nb"))
	assert.Equal(t, []string{"\n"}, splitKeepEnds("\n"))
}
