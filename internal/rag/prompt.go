package rag

import (
	"fmt"
	"strings"
)

// buildGreetPrompt builds the greet instruction. The query content is
// deliberately ignored.
func buildGreetPrompt() string {
	return "아주 짧게 인사하고, 이 봇은 농업(작물·재배·병해충) 특화 챗봇임을 안내한 뒤 " +
		"농업 관련 질문을 입력해 달라고 정중히 요청해줘. 한두 문장만."
}

// buildAnswerPrompt embeds the query, the assembled context, the reference
// links (title: url per line) and the embed ids, with an instruction to
// answer in roughly ten lines referencing the links.
func buildAnswerPrompt(query string, rc *RetrievalContext) string {
	var links strings.Builder
	for i, link := range rc.PDFLinks {
		if i > 0 {
			links.WriteString("\n")
		}
		links.WriteString(link.Title)
		links.WriteString(": ")
		links.WriteString(link.URL)
	}

	return fmt.Sprintf(
		"질문: %s\n\n검색된 내용:\n%s\n\n참고 PDF 링크:\n%s\n\n관련 임베딩 ID: %s\n\n"+
			"위 정보를 바탕으로 10줄 정도로 답변해주고 아래 링크를 참고하라고 해줘.",
		query, rc.Context, links.String(), strings.Join(rc.EmbedIDs, ", "))
}

// buildFallbackPrompt asks for a short general answer that discloses the
// topic is not covered by the indexed data and invites crop/symptom/region
// detail.
func buildFallbackPrompt(query string) string {
	return fmt.Sprintf(
		"사용자 질문: %s\n\n"+
			"주제가 농업 관련이지만 현재 제공 데이터에는 충분한 근거가 없습니다. "+
			"간단한 일반 정보 수준으로 2~3문장 요약 제공 후, "+
			"마지막에 '이 주제는 현재 저희 데이터에 포함되어 있지 않아 일반적인 정보만 안내드렸어요. "+
			"작물명·증상·지역을 함께 알려주시면 더 신뢰도 높은 답변을 드릴 수 있습니다 🙂'라고 안내해줘.",
		query)
}
