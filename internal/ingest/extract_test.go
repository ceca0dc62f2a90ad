package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBody(t *testing.T) {
	html := `
<div>
  <h2>토마토 재배 기술</h2>
  <p>토마토는   물을 좋아합니다.</p>
  <p>병해충에 주의하세요.</p>
</div>`

	text, err := ExtractBody(html)

	require.NoError(t, err)
	assert.Contains(t, text, "토마토 재배 기술")
	assert.Contains(t, text, "토마토는 물을 좋아합니다.")
	assert.Contains(t, text, "병해충에 주의하세요.")
	// Space runs collapsed.
	assert.NotContains(t, text, "  ")
}

func TestExtractBody_RemovesNoise(t *testing.T) {
	html := `
<div>
  <script>alert("스크립트")</script>
  <style>.hidden { display: none }</style>
  <header>페이지 머리말</header>
  <nav>메뉴</nav>
  <table><tr><td>표 데이터</td></tr></table>
  <img src="x.png" alt="이미지">
  <p>남아야 하는 본문</p>
  <footer>바닥글</footer>
</div>`

	text, err := ExtractBody(html)

	require.NoError(t, err)
	assert.Equal(t, "남아야 하는 본문", text)
}

func TestExtractBody_BreaksToNewlines(t *testing.T) {
	html := `<p>첫 줄<br>둘째 줄</p><hr><p>셋째 줄</p>`

	text, err := ExtractBody(html)

	require.NoError(t, err)
	assert.Contains(t, text, "첫 줄\n둘째 줄")
	lines := strings.Split(text, "\n")
	assert.Contains(t, lines, "셋째 줄")
}

func TestExtractBody_CollapsesBlankLines(t *testing.T) {
	html := `<p>첫 단락</p><br><br><br><br><p>둘째 단락</p>`

	text, err := ExtractBody(html)

	require.NoError(t, err)
	assert.NotContains(t, text, "\n\n\n")
}

func TestExtractBody_Empty(t *testing.T) {
	for _, html := range []string{"", "   ", "\n"} {
		text, err := ExtractBody(html)
		require.NoError(t, err)
		assert.Empty(t, text)
	}
}

func TestExtractBody_BlockElementsSeparated(t *testing.T) {
	html := `<ul><li>첫 항목</li><li>둘째 항목</li></ul>`

	text, err := ExtractBody(html)

	require.NoError(t, err)
	assert.NotContains(t, text, "첫 항목둘째 항목")
}
