// Package validate checks assembled reports against a per-type JSON Schema
// before they are written.
package validate

import (
	"github.com/garvonious-ui/cuervo-intel-sub000/constants"
)

// typeSections lists the sub-records each non-profile report type may carry.
var typeSections = map[constants.ReportType][]string{
	constants.TikTokHashtag: {
		"executive_summary", "audience_profile", "hashtag_analysis", "interesting_conversations",
		"conversation_map", "content_trends", "brand_mentions", "in_market_campaigns",
		"how_to_win", "creator_archetypes",
	},
	constants.InstagramHashtag: {
		"executive_summary", "audience_profile", "hashtag_analysis", "content_trends",
		"brand_mentions", "creator_archetypes", "how_to_win",
	},
	constants.TikTokKeywords: {
		"executive_summary", "audience_profile", "content_trends", "brand_mentions",
		"creator_archetypes", "how_to_win",
	},
	constants.TikTokSearch: {
		"executive_summary", "audience_profile", "content_trends", "brand_mentions",
		"creator_archetypes", "how_to_win", "interesting_conversations", "in_market_campaigns",
	},
	constants.GoogleNews: {
		"executive_summary", "news_analysis", "news_trends", "top_stories", "competitor_coverage",
		"brand_mentions", "trending_narratives", "swot_analysis", "key_statistics", "quotes",
		"strategic_implications", "audience_profile",
	},
}

var profileSections = []string{
	"audience_profile", "snapshot", "creator_summary", "sponsorships",
	"future_sponsorship_suggestions", "statistics", "engagement_analysis",
	"posting_analysis", "how_to_win", "top_posts",
}

// BuildReportSchema returns the JSON Schema (draft 2020-12 subset) for one
// report type as a generic map. The schema is structural: numeric values
// come from text heuristics and carry no range bounds.
func BuildReportSchema(rt constants.ReportType) map[string]any {
	props := map[string]any{
		"report_type": map[string]any{"type": "string", "const": string(rt)},
		"report_date": str(),
	}
	idKey := rt.IdentifierKey()
	props[idKey] = str()

	sections := typeSections[rt]
	if rt.IsProfile() {
		sections = profileSections
	}
	for _, name := range sections {
		props[name] = sectionSchemas[name]
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"report_type", idKey, "report_date"},
	}
}

var sectionSchemas = map[string]map[string]any{
	"executive_summary": obj(map[string]any{
		"overview": str(), "key_insights": strList(), "search_term": str(), "search_purpose": str(),
	}),
	"audience_profile": obj(map[string]any{
		"summary": str(), "needs": strList(), "objections": strList(), "desires": strList(), "pain_points": strList(),
	}, "needs", "objections", "desires", "pain_points"),
	"snapshot": obj(map[string]any{
		"followers": num(), "following": num(), "avg_likes": num(), "avg_comments": num(), "avg_engagement_rate": num(),
	}),
	"creator_summary": obj(map[string]any{
		"search_purpose": str(), "topline": str(), "what_it_means": str(),
		"common_themes": strList(), "what_hits": str(), "what_misses": str(),
	}),
	"how_to_win": obj(map[string]any{
		"summary": str(), "territories": strList(), "audience_verbatims": strList(),
	}),
	"sponsorships": obj(map[string]any{
		"summary": str(), "integration_summary": str(), "categories": strList(), "companies": strList(),
	}),
	"future_sponsorship_suggestions": list(obj(map[string]any{
		"category": str(), "why_it_works": str(), "how_to_activate": strList(),
	}, "category")),
	"statistics": obj(map[string]any{
		"all_posts":       postStats(),
		"by_content_type": map[string]any{"type": "object", "additionalProperties": postStats()},
	}, "all_posts"),
	"engagement_analysis": obj(map[string]any{"summary": str()}),
	"posting_analysis":    obj(map[string]any{"summary": str()}),
	"top_posts": obj(map[string]any{
		"most_liked": topPost(), "least_liked": topPost(),
		"most_commented": topPost(), "least_commented": topPost(),
		"most_engaged": topPost(), "least_engaged": topPost(),
	}),
	"hashtag_analysis": obj(map[string]any{
		"summary": str(), "key_findings": strList(), "opportunities": strList(),
		"gaps_risks_unmet_needs": strList(), "strategic_actions": strList(), "related_hashtags": strList(),
	}),
	"interesting_conversations": list(obj(map[string]any{"title": str(), "description": str()}, "title")),
	"conversation_map": obj(map[string]any{
		"summary": str(), "relationship_analysis": str(),
		"overarching_patterns": strList(), "action_opportunities": strList(),
	}),
	"content_trends": list(obj(map[string]any{"trend": str(), "description": str()}, "trend")),
	"news_trends":    list(obj(map[string]any{"trend": str(), "description": str()}, "trend")),
	"brand_mentions": list(obj(map[string]any{
		"brand": str(), "context": str(), "reception": str(), "sentiment": str(), "verbatims": strList(),
	}, "brand")),
	"in_market_campaigns": list(obj(map[string]any{"campaign": str(), "description": str()}, "campaign")),
	"creator_archetypes": list(obj(map[string]any{
		"archetype": str(), "description": str(), "appeal": str(), "examples": strList(),
	}, "archetype")),
	"news_analysis": obj(map[string]any{
		"summary": str(),
		"sentiment_breakdown": obj(map[string]any{
			"positive_pct": num(), "neutral_pct": num(), "negative_pct": num(),
		}),
		"key_topics": strList(), "opportunities": strList(), "risks": strList(),
	}),
	"top_stories":         list(obj(map[string]any{"title": str(), "description": str()}, "title")),
	"competitor_coverage": list(obj(map[string]any{"title": str(), "description": str()}, "title")),
	"trending_narratives": list(obj(map[string]any{
		"narrative": str(), "description": str(), "brands_involved": strList(),
	}, "narrative")),
	"swot_analysis": obj(map[string]any{
		"strengths": strList(), "weaknesses": strList(), "opportunities": strList(), "threats": strList(),
	}),
	"key_statistics": list(obj(map[string]any{"value": str(), "description": str()}, "value")),
	"quotes":         strList(),
	"strategic_implications": obj(map[string]any{
		"summary": str(), "action_items": strList(),
	}),
}

func str() map[string]any { return map[string]any{"type": "string"} }

func num() map[string]any { return map[string]any{"type": "number"} }

// strList tolerates null so a parser that leaves a list unset still passes.
func strList() map[string]any {
	return map[string]any{"type": []string{"array", "null"}, "items": str()}
}

func list(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

func obj(props map[string]any, required ...string) map[string]any {
	o := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if len(required) > 0 {
		o["required"] = required
	}
	return o
}

func postStats() map[string]any {
	props := map[string]any{}
	for _, k := range []string{
		"min_views", "max_views", "median_views", "avg_views",
		"min_likes", "max_likes", "median_likes", "avg_likes",
		"min_comments", "max_comments", "median_comments", "avg_comments",
		"avg_engagement_rate", "avg_shares",
	} {
		props[k] = num()
	}
	return obj(props)
}

func topPost() map[string]any {
	return obj(map[string]any{
		"caption": str(), "engagement_rate": num(), "likes": num(),
		"comments": num(), "views": num(), "link": str(),
	})
}
