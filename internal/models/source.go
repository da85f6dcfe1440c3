package models

// LiveSource represents a live playlist source (one M3U URL) as stored in the config store.
type LiveSource struct {
	Key           string `json:"key" yaml:"key"`
	Name          string `json:"name" yaml:"name"`
	URL           string `json:"url" yaml:"url"`
	UserAgent     string `json:"ua,omitempty" yaml:"ua,omitempty"`
	Disabled      bool   `json:"disabled" yaml:"disabled"`
	ChannelNumber int    `json:"channelNumber" yaml:"channel_number"`
}

// SourceRef is the short form of a source returned alongside channel listings.
type SourceRef struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Ref returns the key/name pair of s.
func (s LiveSource) Ref() SourceRef {
	return SourceRef{Key: s.Key, Name: s.Name}
}

// FindLiveSource returns the first source whose key matches, or nil.
func FindLiveSource(sources []LiveSource, key string) *LiveSource {
	for i := range sources {
		if sources[i].Key == key {
			return &sources[i]
		}
	}
	return nil
}
