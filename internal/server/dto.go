package server

// CastResponse is the JSON shape returned by POST /v1/cast.
type CastResponse struct {
	Method         string             `json:"method"`
	Lines          []LineResponse     `json:"lines"`
	Primary        HexagramResponse   `json:"primary"`
	ChangingLines  []int              `json:"changing_lines"`
	Transformed    *HexagramResponse  `json:"transformed,omitempty"`
	Interpretation InterpretationResp `json:"interpretation"`
}

type LineResponse struct {
	Position int    `json:"position"`
	Value    int    `json:"value"`
	Current  string `json:"current"`
	Future   string `json:"future"`
	Changing bool   `json:"changing"`
}

type HexagramResponse struct {
	Number    int      `json:"number"`
	Symbol    string   `json:"symbol"`
	NameZh    string   `json:"name_zh"`
	NamePy    string   `json:"name_pinyin"`
	NameEn    string   `json:"name_en"`
	Classical string   `json:"judgment_classical"`
	Modern    string   `json:"judgment_modern"`
	Lines     []string `json:"lines"`
	Extra     string   `json:"extra,omitempty"`
}

type InterpretationResp struct {
	ChangingCount int    `json:"changing_count"`
	Focus         string `json:"focus"`
	Description   string `json:"description"`
	RelevantLines []int  `json:"relevant_lines"`
}

// ProbeResponse is the JSON shape returned by POST /v1/gif/probe.
type ProbeResponse struct {
	Animated bool `json:"animated"`
	Width    int  `json:"width"`
	Height   int  `json:"height"`
	Frames   int  `json:"frames"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
