package constants

// TypeSignature maps a lowercased title line to the report type it announces.
type TypeSignature struct {
	Pattern string
	Type    ReportType
}

// TypeSignatures is ordered: detection tries patterns in this order and the
// first match wins.
var TypeSignatures = []TypeSignature{
	{"tiktok hashtag analysis presentation", TikTokHashtag},
	{"tiktok hashtag search analysis presentation", TikTokHashtag},
	{"tiktok profile analysis presentation", TikTokProfile},
	{"instagram profile analysis presentation", InstagramProfile},
	{"instagram profile presentation", InstagramProfile},
	{"instagram hashtag analysis presentation", InstagramHashtag},
	{"instagram hashtag search analysis presentation", InstagramHashtag},
	{"tiktok keyword analysis presentation", TikTokKeywords},
	{"tiktok keywords analysis presentation", TikTokKeywords},
	{"tiktok keyword search analysis presentation", TikTokKeywords},
	{"tiktok keywords search analysis presentation", TikTokKeywords},
	{"tiktok search analysis presentation", TikTokSearch},
	{"tiktok search presentation", TikTokSearch},
	{"google news analysis presentation", GoogleNews},
	{"google news presentation", GoogleNews},
}
