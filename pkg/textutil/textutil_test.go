package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments_PlainCodeUnchanged(t *testing.T) {
	t.Parallel()

	src := "#include <stdio.h>\nint main(void) { return 0; }\n"

	assert.Equal(t, src, StripComments(src))
}

func TestStripComments_LineComment(t *testing.T) {
	t.Parallel()

	src := "int x; // trailing\n"
	got := StripComments(src)

	assert.Equal(t, "int x;"+strings.Repeat(" ", len("int x; // trailing")-len("int x;"))+"\n", got)
}

func TestStripComments_LineCommentHidesInclude(t *testing.T) {
	t.Parallel()

	got := StripComments("// #include <stdio.h>\n")

	assert.NotContains(t, got, "#include")
	assert.True(t, strings.HasSuffix(got, "\n"))
}

func TestStripComments_BlockCommentSameLine(t *testing.T) {
	t.Parallel()

	got := StripComments("int /* hidden */ y;\n")

	assert.Equal(t, "int "+strings.Repeat(" ", len("/* hidden */"))+" y;\n", got)
}

func TestStripComments_BlockCommentMultiLine(t *testing.T) {
	t.Parallel()

	src := "before\n/* line one\nline two */\nafter\n"
	got := StripComments(src)

	assert.NotContains(t, got, "line one")
	assert.NotContains(t, got, "line two")
	assert.Contains(t, got, "before")
	assert.Contains(t, got, "after")
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(got, "\n"))
}

func TestStripComments_BlockCommentHidesInclude(t *testing.T) {
	t.Parallel()

	got := StripComments("/*\n#include <stdio.h>\n*/\n")

	assert.NotContains(t, got, "#include")
}

func TestStripComments_UnterminatedBlockComment(t *testing.T) {
	t.Parallel()

	src := "code\n/* open\nstill inside\n"
	got := StripComments(src)

	assert.Contains(t, got, "code")
	assert.NotContains(t, got, "inside")
	assert.Equal(t, len(src), len(got))
}

func TestStripComments_StringLiteralImmunity(t *testing.T) {
	t.Parallel()

	src := `const char* s = "http://x";` + "\n"

	assert.Equal(t, src, StripComments(src))
}

func TestStripComments_BlockMarkerInsideString(t *testing.T) {
	t.Parallel()

	src := `const char* s = "/* not a comment */";` + "\n"

	assert.Equal(t, src, StripComments(src))
}

func TestStripComments_EscapedQuoteInString(t *testing.T) {
	t.Parallel()

	src := `const char* s = "she said \"hi\" // still string";` + "\n"

	assert.Equal(t, src, StripComments(src))
}

func TestStripComments_CharLiteral(t *testing.T) {
	t.Parallel()

	src := "char c = '/'; char q = '\\''; int z; // gone\n"
	got := StripComments(src)

	assert.Contains(t, got, "char c = '/';")
	assert.Contains(t, got, "char q = '\\'';")
	assert.NotContains(t, got, "gone")
}

func TestStripComments_CommentAfterString(t *testing.T) {
	t.Parallel()

	src := `puts("ok"); // comment` + "\n"
	got := StripComments(src)

	assert.Contains(t, got, `puts("ok");`)
	assert.NotContains(t, got, "comment")
}

func TestStripComments_LineCountInvariance(t *testing.T) {
	t.Parallel()

	samples := []string{
		"",
		"no comments at all\n",
		"// full line\n",
		"/* a */ b /* c */\n",
		"/* spans\nthree\nlines */\nx\n",
		"\"// in string\"\n// real\n/* block\n*/\n",
		"crlf // comment\r\nnext\r\n",
		"tail // no newline",
	}

	for _, src := range samples {
		got := StripComments(src)

		assert.Equal(t, strings.Count(src, "\n"), strings.Count(got, "\n"), "sample %q", src)
		assert.Equal(t, len(src), len(got), "sample %q", src)
	}
}

func TestStripComments_CRLFPreserved(t *testing.T) {
	t.Parallel()

	got := StripComments("a // x\r\nb\r\n")

	assert.Contains(t, got, "\r\n")
	assert.Equal(t, "a "+strings.Repeat(" ", len("// x"))+"\r\nb\r\n", got)
}

func TestIsBinary_EmptyData(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte{}))
}

func TestIsBinary_PureText(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary([]byte("int main(void) {}\n")))
}

func TestIsBinary_NullByte(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBinary([]byte("obj\x00ect")))
}

func TestIsBinary_NullBeyondSniffBoundary(t *testing.T) {
	t.Parallel()

	data := make([]byte, BinarySniffLength+100)
	for i := range data {
		data[i] = 'a'
	}

	data[BinarySniffLength+50] = 0x00

	assert.False(t, IsBinary(data))
}

func TestCountLines_EmptyData(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountLines(nil))
}

func TestCountLines_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, CountLines([]byte("a\nb\nc")))
}

func TestCountLines_TrailingNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, CountLines([]byte("a\nb\nc\n")))
}
