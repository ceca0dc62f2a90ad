// Package rag implements the retrieval-augmented question answering
// pipeline for the crop cultivation knowledge base.
//
// The pipeline is a strict sequence per request:
//
//	raw query → Gate (trim, moderation)
//	          → greeting check (fixed token set, no retrieval)
//	          → Retriever (embed → vector query → distance filter → crop
//	            narrowing → context assembly)
//	          → Responder (one completion call with the selected prompt)
//	          → RAGResult
//
// The Service borrows long-lived handles to the embedding, moderation,
// completion and vector store clients; it holds no per-request state and is
// safe for concurrent use.
package rag
