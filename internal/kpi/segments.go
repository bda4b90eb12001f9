package kpi

// scoreKey classifies each RFM dimension as high band (top half) or low band
type scoreKey struct {
	R, F, M bool
}

// segmentTable enumerates the segment rule set over all eight band triples
var segmentTable = map[scoreKey]Segment{
	{R: true, F: true, M: true}:    SegmentChampions,
	{R: true, F: true, M: false}:   SegmentLoyal,
	{R: true, F: false, M: true}:   SegmentNew,
	{R: true, F: false, M: false}:  SegmentNew,
	{R: false, F: true, M: true}:   SegmentAtRisk,
	{R: false, F: true, M: false}:  SegmentAtRisk,
	{R: false, F: false, M: true}:  SegmentAtRisk,
	{R: false, F: false, M: false}: SegmentDormant,
}

// highBand reports whether a band score falls in the top half of the scale
func highBand(score, bands int) bool {
	return 2*score > bands
}

// segmentFor maps a band score triple to its segment label. Pure function:
// identical triples always produce identical segments.
func segmentFor(recency, frequency, monetary, bands int) Segment {
	return segmentTable[scoreKey{
		R: highBand(recency, bands),
		F: highBand(frequency, bands),
		M: highBand(monetary, bands),
	}]
}
