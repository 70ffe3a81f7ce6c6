package id3v2

// FieldToken names a semantic tag field that a frame code can be routed
// to (spec.md §4.5).
type FieldToken string

const (
	FieldTitle              FieldToken = "TITLE"
	FieldArtist             FieldToken = "ARTIST"
	FieldAlbumArtist        FieldToken = "ALBUM_ARTIST"
	FieldConductor          FieldToken = "CONDUCTOR"
	FieldOriginalArtist     FieldToken = "ORIGINAL_ARTIST"
	FieldAlbum              FieldToken = "ALBUM"
	FieldOriginalAlbum      FieldToken = "ORIGINAL_ALBUM"
	FieldTrackNumber        FieldToken = "TRACK_NUMBER"
	FieldDiscNumber         FieldToken = "DISC_NUMBER"
	FieldRecordingDate      FieldToken = "RECORDING_DATE"
	FieldRecordingYear      FieldToken = "RECORDING_YEAR"
	FieldRecordingDayMonth  FieldToken = "RECORDING_DAYMONTH"
	FieldComment            FieldToken = "COMMENT"
	FieldComposer           FieldToken = "COMPOSER"
	FieldRating             FieldToken = "RATING"
	FieldGenre              FieldToken = "GENRE"
	FieldCopyright          FieldToken = "COPYRIGHT"
	FieldPublisher          FieldToken = "PUBLISHER"
	FieldGeneralDescription FieldToken = "GENERAL_DESCRIPTION"
)

// knownFrameIDsV22 is the set of standard ID3v2.2 (3-character) frame
// ids, from http://id3.org/id3v2-00.
var knownFrameIDsV22 = map[string]bool{
	"BUF": true, "CNT": true, "COM": true, "CRA": true, "CRM": true,
	"ETC": true, "EQU": true, "GEO": true, "IPL": true, "LNK": true,
	"MCI": true, "MLL": true, "PIC": true, "POP": true, "REV": true,
	"RVA": true, "SLT": true, "STC": true, "TAL": true, "TBP": true,
	"TCM": true, "TCO": true, "TCR": true, "TDA": true, "TDY": true,
	"TEN": true, "TFT": true, "TIM": true, "TKE": true, "TLA": true,
	"TLE": true, "TMT": true, "TOA": true, "TOF": true, "TOL": true,
	"TOR": true, "TOT": true, "TP1": true, "TP2": true, "TP3": true,
	"TP4": true, "TPA": true, "TPB": true, "TRC": true, "TRD": true,
	"TRK": true, "TSI": true, "TSS": true, "TT1": true, "TT2": true,
	"TT3": true, "TXT": true, "TXX": true, "TYE": true, "UFI": true,
	"ULT": true, "WAF": true, "WAR": true, "WAS": true, "WCM": true,
	"WCP": true, "WPB": true, "WXX": true,
}

// knownFrameIDsV23 is the set of standard ID3v2.3 (4-character) frame
// ids, from http://id3.org/id3v2.3.0 §4. Grounded on (and cross-checked
// against) tmthrgd-id3v2/generate_ids.go's v23Spec table and
// jlubawy-go-id3v2/id3v230's SupportedFrames map.
var knownFrameIDsV23 = map[string]bool{
	"AENC": true, "APIC": true, "COMM": true, "COMR": true, "ENCR": true,
	"EQUA": true, "ETCO": true, "GEOB": true, "GRID": true, "IPLS": true,
	"LINK": true, "MCDI": true, "MLLT": true, "OWNE": true, "PRIV": true,
	"PCNT": true, "POPM": true, "POSS": true, "RBUF": true, "RVAD": true,
	"RVRB": true, "SYLT": true, "SYTC": true, "TALB": true, "TBPM": true,
	"TCOM": true, "TCON": true, "TCOP": true, "TDAT": true, "TDLY": true,
	"TENC": true, "TEXT": true, "TFLT": true, "TIME": true, "TIT1": true,
	"TIT2": true, "TIT3": true, "TKEY": true, "TLAN": true, "TLEN": true,
	"TMED": true, "TOAL": true, "TOFN": true, "TOLY": true, "TOPE": true,
	"TORY": true, "TOWN": true, "TPE1": true, "TPE2": true, "TPE3": true,
	"TPE4": true, "TPOS": true, "TPUB": true, "TRCK": true, "TRDA": true,
	"TRSN": true, "TRSO": true, "TSIZ": true, "TSRC": true, "TSSE": true,
	"TYER": true, "TXXX": true, "UFID": true, "USER": true, "USLT": true,
	"WCOM": true, "WCOP": true, "WOAF": true, "WOAR": true, "WOAS": true,
	"WORS": true, "WPAY": true, "WPUB": true, "WXXX": true,
}

// knownFrameIDsV24 is the set of standard ID3v2.4 (4-character) frame
// ids, from http://id3.org/id3v2.4.0-frames. Grounded on
// tmthrgd-id3v2/generate_ids.go's v24Spec table.
var knownFrameIDsV24 = map[string]bool{
	"AENC": true, "APIC": true, "ASPI": true, "COMM": true, "COMR": true,
	"ENCR": true, "EQU2": true, "ETCO": true, "GEOB": true, "GRID": true,
	"LINK": true, "MCDI": true, "MLLT": true, "OWNE": true, "PRIV": true,
	"PCNT": true, "POPM": true, "POSS": true, "RBUF": true, "RVA2": true,
	"RVRB": true, "SEEK": true, "SIGN": true, "SYLT": true, "SYTC": true,
	"TALB": true, "TBPM": true, "TCOM": true, "TCON": true, "TCOP": true,
	"TDEN": true, "TDLY": true, "TDOR": true, "TDRC": true, "TDRL": true,
	"TDTG": true, "TENC": true, "TEXT": true, "TFLT": true, "TIPL": true,
	"TIT1": true, "TIT2": true, "TIT3": true, "TKEY": true, "TLAN": true,
	"TLEN": true, "TMCL": true, "TMED": true, "TMOO": true, "TOAL": true,
	"TOFN": true, "TOLY": true, "TOPE": true, "TOWN": true, "TPE1": true,
	"TPE2": true, "TPE3": true, "TPE4": true, "TPOS": true, "TPRO": true,
	"TPUB": true, "TRCK": true, "TRSN": true, "TRSO": true, "TSOA": true,
	"TSOP": true, "TSOT": true, "TSRC": true, "TSSE": true, "TSST": true,
	"TXXX": true, "UFID": true, "USER": true, "USLT": true, "WCOM": true,
	"WCOP": true, "WOAF": true, "WOAR": true, "WOAS": true, "WORS": true,
	"WPAY": true, "WPUB": true, "WXXX": true,
}

// knownFrameIDs returns the known-id set for version (2, 3 or 4).
func knownFrameIDs(version uint8) map[string]bool {
	switch version {
	case 2:
		return knownFrameIDsV22
	case 3:
		return knownFrameIDsV23
	default:
		return knownFrameIDsV24
	}
}

// fieldTokensV22 maps ID3v2.2 (3-character) frame codes to semantic
// field tokens (spec.md §4.5).
var fieldTokensV22 = map[string]FieldToken{
	"TT2": FieldTitle,
	"TP1": FieldArtist,
	"TP2": FieldAlbumArtist,
	"TP3": FieldConductor,
	"TOA": FieldOriginalArtist,
	"TAL": FieldAlbum,
	"TOT": FieldOriginalAlbum,
	"TRK": FieldTrackNumber,
	"TPA": FieldDiscNumber,
	"TYE": FieldRecordingYear,
	"TDA": FieldRecordingDayMonth,
	"COM": FieldComment,
	"TCM": FieldComposer,
	"POP": FieldRating,
	"TCO": FieldGenre,
	"TCR": FieldCopyright,
	"TPB": FieldPublisher,
	"TT1": FieldGeneralDescription,
}

// fieldTokensV34 maps ID3v2.3/2.4 (4-character) frame codes to semantic
// field tokens (spec.md §4.5). Note TCON (not TCO) maps to GENRE here —
// spec.md §8 property 6 requires that a bare TCON frame under a v2.2 tag
// does *not* match, which falls out naturally from these being two
// distinct maps.
var fieldTokensV34 = map[string]FieldToken{
	"TIT2": FieldTitle,
	"TPE1": FieldArtist,
	"TPE2": FieldAlbumArtist,
	"TPE3": FieldConductor,
	"TOPE": FieldOriginalArtist,
	"TALB": FieldAlbum,
	"TOAL": FieldOriginalAlbum,
	"TRCK": FieldTrackNumber,
	"TPOS": FieldDiscNumber,
	"TDRC": FieldRecordingDate,
	"TYER": FieldRecordingYear,
	"TDAT": FieldRecordingDayMonth,
	"COMM": FieldComment,
	"TCOM": FieldComposer,
	"POPM": FieldRating,
	"TCON": FieldGenre,
	"TCOP": FieldCopyright,
	"TPUB": FieldPublisher,
	"TIT1": FieldGeneralDescription,
}

// fieldToken resolves frameID (already uppercased) to a semantic field
// token for the given major version, as spec.md §4.9's setField does.
func fieldToken(version uint8, frameID string) (FieldToken, bool) {
	if version == 2 {
		tok, ok := fieldTokensV22[frameID]
		return tok, ok
	}
	tok, ok := fieldTokensV34[frameID]
	return tok, ok
}

// writeFieldOrder is the reverse of fieldTokensV34, used by the writer
// (which always emits ID3v2.4) to find the frame code for a semantic
// field. Declaration order here is also emission order for mapped
// fields (spec.md §5 ordering guarantee).
var writeFieldOrder = []struct {
	Token FieldToken
	Code  string
}{
	{FieldTitle, "TIT2"},
	{FieldArtist, "TPE1"},
	{FieldAlbumArtist, "TPE2"},
	{FieldConductor, "TPE3"},
	{FieldOriginalArtist, "TOPE"},
	{FieldAlbum, "TALB"},
	{FieldOriginalAlbum, "TOAL"},
	{FieldTrackNumber, "TRCK"},
	{FieldDiscNumber, "TPOS"},
	{FieldRecordingDate, "TDRC"},
	{FieldRecordingYear, "TYER"},
	{FieldRecordingDayMonth, "TDAT"},
	{FieldComment, "COMM"},
	{FieldComposer, "TCOM"},
	{FieldRating, "POPM"},
	{FieldGenre, "TCON"},
	{FieldCopyright, "TCOP"},
	{FieldPublisher, "TPUB"},
	{FieldGeneralDescription, "TIT1"},
}
