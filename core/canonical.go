package core

import "strings"

// MaxTakeaways is the maximum number of takeaway statements an item carries.
// The extraction stage is prompted for at most this many; anything beyond is
// clamped before indexing.
const MaxTakeaways = 3

// CanonicalText assembles the one string that is allowed to be embedded for a
// content item. It is built only from AI-extracted fields, so stuffing the raw
// source text with unrelated keywords cannot reach the similarity index unless
// those keywords survive being selected as a title, takeaway, or topic.
//
// Format:
//
//	Title: <t> | Category: <c> | Key Insights: <k1>, <k2>, <k3> | Topics: <s1> <s2>
func CanonicalText(title, category string, takeaways []string, tagSlugs []string) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(title)
	b.WriteString(" | Category: ")
	b.WriteString(category)
	b.WriteString(" | Key Insights: ")
	b.WriteString(strings.Join(takeaways, ", "))
	b.WriteString(" | Topics: ")
	b.WriteString(strings.Join(tagSlugs, " "))
	return b.String()
}

// CanonicalText returns the canonical embedding input for the item.
func (c *ContentItem) CanonicalText() string {
	slugs := make([]string, len(c.Tags))
	for i, tag := range c.Tags {
		slugs[i] = tag.Slug
	}
	return CanonicalText(c.Title, c.Category, c.Takeaways, slugs)
}
