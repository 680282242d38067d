// Package darkzone detects statute citations left unexplained by the
// surrounding judgment text.
//
// A judgment that convicts "under Section 302 IPC" without ever stating
// what Section 302 provides leaves a reader, and a summarizer, without the
// statutory grounding for the outcome. Such citations are dark zones. The
// detector inspects a context window around every statute section citation
// and flags those with no explanation indicator nearby and no definitional
// wording after the mention. Dark zones steer retrieval toward the statute
// text that fills the gap.
package darkzone
