package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weconnect/agrisearch/internal/log"
)

const listXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>00</resultCode></header>
  <body>
    <items>
      <item>
        <curationNo>100</curationNo>
        <cntntsSj>토마토 재배 기술</cntntsSj>
        <curationImgUrl>http://x/img.png</curationImgUrl>
        <contentCnt>3</contentCnt>
        <atchmnflGroupEsntlCode>GRP1</atchmnflGroupEsntlCode>
        <atchmnflStreNm>tomato.pdf</atchmnflStreNm>
      </item>
      <item>
        <curationNo>200</curationNo>
        <cntntsSj>감자 저장 요령</cntntsSj>
      </item>
    </items>
  </body>
</response>`

const detailXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <body>
    <items>
      <item>
        <curationNo>100</curationNo>
        <cntntsInfoHtml>&lt;p&gt;토마토는 물을 좋아합니다.&lt;/p&gt;</cntntsInfoHtml>
      </item>
    </items>
  </body>
</response>`

const attachXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <body>
    <DtlDefaultInfo>
      <atchmnflGroupEsntlCodeOrtx>GRP1</atchmnflGroupEsntlCodeOrtx>
      <atchmnflUrl>http://x/tomato.pdf</atchmnflUrl>
      <linkUrl>http://x/page</linkUrl>
    </DtlDefaultInfo>
  </body>
</response>`

const emptyXML = `<?xml version="1.0" encoding="UTF-8"?>
<response><body><items></items></body></response>`

func newTestFeedClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Referer: "https://example.com",
	}, log.NewNop())
	require.NoError(t, err)
	return client
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(ClientConfig{}, log.NewNop())
	assert.ErrorIs(t, err, ErrMissingFeedKey)
}

func TestClient_List(t *testing.T) {
	client := newTestFeedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, listPath, r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "https://example.com", r.Header.Get("Referer"))
		assert.Equal(t, "2", r.URL.Query().Get("pageNo"))
		assert.Equal(t, "50", r.URL.Query().Get("numOfRows"))

		_, _ = w.Write([]byte(listXML))
	})

	listings, err := client.List(context.Background(), 2, 50)

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "100", listings[0].CurationNo)
	assert.Equal(t, "토마토 재배 기술", listings[0].Title)
	assert.Equal(t, "GRP1", listings[0].AttachGroupCode)

	// Fields the feed omits come back empty, not as an error.
	assert.Equal(t, "200", listings[1].CurationNo)
	assert.Empty(t, listings[1].ImageURL)
}

func TestClient_Detail(t *testing.T) {
	client := newTestFeedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, detailPath, r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("srchCurationNo"))
		assert.Equal(t, "1", r.URL.Query().Get("srchCntntsSnn"))

		_, _ = w.Write([]byte(detailXML))
	})

	detail, err := client.Detail(context.Background(), "100", "토마토 재배 기술")

	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "100", detail.CurationNo)
	assert.Equal(t, "토마토 재배 기술", detail.Title)
	assert.Equal(t, "토마토는 물을 좋아합니다.", detail.Text)
}

func TestClient_Detail_NoItem(t *testing.T) {
	client := newTestFeedClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(emptyXML))
	})

	detail, err := client.Detail(context.Background(), "999", "없는 문서")

	require.NoError(t, err)
	assert.Nil(t, detail)
}

func TestClient_AttachInfo_FallbackElement(t *testing.T) {
	client := newTestFeedClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, attachPath, r.URL.Path)
		_, _ = w.Write([]byte(attachXML))
	})

	attach, err := client.AttachInfo(context.Background(), "100")

	require.NoError(t, err)
	require.NotNil(t, attach)
	assert.Equal(t, "100", attach.CurationNo)
	assert.Equal(t, "http://x/tomato.pdf", attach.AttachURL)
	assert.Equal(t, "http://x/page", attach.LinkURL)
}

func TestClient_AttachInfo_NoRecord(t *testing.T) {
	client := newTestFeedClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(emptyXML))
	})

	attach, err := client.AttachInfo(context.Background(), "999")

	require.NoError(t, err)
	assert.Nil(t, attach)
}

func TestClient_Get_ErrorStatus(t *testing.T) {
	client := newTestFeedClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})

	_, err := client.List(context.Background(), 1, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
