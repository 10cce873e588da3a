package lms

// Metadata tag identifiers accepted by the status query's tags: parameter.
// Each selects one field in the returned track mappings. The server treats
// them as opaque single-character codes.
const (
	TagArtist         = "a"
	TagAlbumID        = "e"
	TagArtistID       = "s"
	TagAlbum          = "l"
	TagArtworkTrackID = "J"
	TagArtworkURL     = "K"
	TagBitrate        = "r"
	TagComment        = "k"
	TagContentType    = "o"
	TagCoverArt       = "j"
	TagCoverID        = "c"
	TagDisc           = "i"
	TagDiscCount      = "q"
	TagDuration       = "d"
	TagFilesize       = "f"
	TagGenre          = "g"
	TagGenreID        = "p"
	TagRemote         = "x"
	TagRemoteTitle    = "N"
	TagSampleRate     = "T"
	TagTrackNumber    = "t"
	TagURL            = "u"
	TagYear           = "y"
)

// DetailedTags returns the tag set used for detailed playlist queries:
// artist, cover id, duration, cover art, artwork URL, album, remote flag
// and artwork track id.
func DetailedTags() []string {
	return []string{
		TagArtist,
		TagCoverID,
		TagDuration,
		TagCoverArt,
		TagArtworkURL,
		TagAlbum,
		TagRemote,
		TagArtworkTrackID,
	}
}
