package atlas

import "k8s.io/apimachinery/pkg/util/sets"

const (
	ENDPOINT_VOLUME                 = "volume"
	ENDPOINT_POSTS                  = "posts"
	ENDPOINT_TOPICS                 = "topics"
	ENDPOINT_POSITIVE_TOPICS        = "positive-topics"
	ENDPOINT_NEGATIVE_TOPICS        = "negative-topics"
	ENDPOINT_BRANDS                 = "brands"
	ENDPOINT_HASHTAGS               = "hashtags"
	ENDPOINT_TOPIC_CLUSTERS         = "topic-clusters"
	ENDPOINT_HEADLINES              = "headlines"
	ENDPOINT_SENTIMENT              = "sentiment"
	ENDPOINT_POSITIVE_KEYWORDS      = "positive-keywords"
	ENDPOINT_NEGATIVE_KEYWORDS      = "negative-keywords"
	ENDPOINT_LINGUISTICS_STATS      = "linguistics-stats"
	ENDPOINT_THEMES                 = "themes"
	ENDPOINT_EMOTIONS               = "emotions"
	ENDPOINT_LANGUAGES              = "languages"
	ENDPOINT_TIMEOFDAY              = "timeofday"
	ENDPOINT_CHANNELS               = "channels"
	ENDPOINT_GENDER                 = "gender"
	ENDPOINT_STATES                 = "states"
	ENDPOINT_COUNTRIES              = "countries"
	ENDPOINT_HOME_OWNERSHIP         = "home-ownership"
	ENDPOINT_INCOME                 = "income"
	ENDPOINT_HOUSEHOLD_VALUE        = "household-value"
	ENDPOINT_EDUCATION              = "education"
	ENDPOINT_DEMOGRAPHICS           = "demographics"
	ENDPOINT_AGES                   = "ages"
	ENDPOINT_INFLUENCE_DISTRIBUTION = "influence-distribution"
	ENDPOINT_INFLUENCERS            = "influencers"
	ENDPOINT_INTERESTS              = "interests"
	ENDPOINT_POST_INTERESTS         = "post-interests"
	ENDPOINT_QUERY_TEST             = "query-test"
	ENDPOINT_EVENTS                 = "events"
	ENDPOINT_STORIES                = "stories"
)

var endpointSet = sets.New(
	ENDPOINT_VOLUME, ENDPOINT_POSTS, ENDPOINT_TOPICS, ENDPOINT_POSITIVE_TOPICS,
	ENDPOINT_NEGATIVE_TOPICS, ENDPOINT_BRANDS, ENDPOINT_HASHTAGS, ENDPOINT_TOPIC_CLUSTERS,
	ENDPOINT_HEADLINES, ENDPOINT_SENTIMENT, ENDPOINT_POSITIVE_KEYWORDS, ENDPOINT_NEGATIVE_KEYWORDS,
	ENDPOINT_LINGUISTICS_STATS, ENDPOINT_THEMES, ENDPOINT_EMOTIONS, ENDPOINT_LANGUAGES,
	ENDPOINT_TIMEOFDAY, ENDPOINT_CHANNELS, ENDPOINT_GENDER, ENDPOINT_STATES,
	ENDPOINT_COUNTRIES, ENDPOINT_HOME_OWNERSHIP, ENDPOINT_INCOME, ENDPOINT_HOUSEHOLD_VALUE,
	ENDPOINT_EDUCATION, ENDPOINT_DEMOGRAPHICS, ENDPOINT_AGES, ENDPOINT_INFLUENCE_DISTRIBUTION,
	ENDPOINT_INFLUENCERS, ENDPOINT_INTERESTS, ENDPOINT_POST_INTERESTS, ENDPOINT_QUERY_TEST,
	ENDPOINT_EVENTS, ENDPOINT_STORIES,
)

// Endpoints lists the known endpoint names, sorted.
func Endpoints() []string {
	return sets.List(endpointSet)
}

func IsEndpoint(name string) bool {
	return endpointSet.Has(name)
}

// output runs endpoint and returns the envelope's payload.
func (r *Request) output(endpoint string) (Value, error) {
	node, err := r.Run(endpoint, false)
	if err != nil {
		return Value{}, err
	}
	return node.Get("output"), nil
}

func (r *Request) Volume() (Value, error)       { return r.output(ENDPOINT_VOLUME) }
func (r *Request) Posts() (Value, error)        { return r.output(ENDPOINT_POSTS) }
func (r *Request) Topics() (Value, error)       { return r.output(ENDPOINT_TOPICS) }
func (r *Request) PositiveTopics() (Value, error) {
	return r.output(ENDPOINT_POSITIVE_TOPICS)
}
func (r *Request) NegativeTopics() (Value, error) {
	return r.output(ENDPOINT_NEGATIVE_TOPICS)
}
func (r *Request) Brands() (Value, error)        { return r.output(ENDPOINT_BRANDS) }
func (r *Request) Hashtags() (Value, error)      { return r.output(ENDPOINT_HASHTAGS) }
func (r *Request) TopicClusters() (Value, error) { return r.output(ENDPOINT_TOPIC_CLUSTERS) }
func (r *Request) Headlines() (Value, error)     { return r.output(ENDPOINT_HEADLINES) }
func (r *Request) Sentiment() (Value, error)     { return r.output(ENDPOINT_SENTIMENT) }
func (r *Request) PositiveKeywords() (Value, error) {
	return r.output(ENDPOINT_POSITIVE_KEYWORDS)
}
func (r *Request) NegativeKeywords() (Value, error) {
	return r.output(ENDPOINT_NEGATIVE_KEYWORDS)
}
func (r *Request) LinguisticsStats() (Value, error) {
	return r.output(ENDPOINT_LINGUISTICS_STATS)
}
func (r *Request) Themes() (Value, error)         { return r.output(ENDPOINT_THEMES) }
func (r *Request) Emotions() (Value, error)       { return r.output(ENDPOINT_EMOTIONS) }
func (r *Request) Languages() (Value, error)      { return r.output(ENDPOINT_LANGUAGES) }
func (r *Request) TimeOfDay() (Value, error)      { return r.output(ENDPOINT_TIMEOFDAY) }
func (r *Request) Channels() (Value, error)       { return r.output(ENDPOINT_CHANNELS) }
func (r *Request) Gender() (Value, error)         { return r.output(ENDPOINT_GENDER) }
func (r *Request) States() (Value, error)         { return r.output(ENDPOINT_STATES) }
func (r *Request) Countries() (Value, error)      { return r.output(ENDPOINT_COUNTRIES) }
func (r *Request) HomeOwnership() (Value, error)  { return r.output(ENDPOINT_HOME_OWNERSHIP) }
func (r *Request) Income() (Value, error)         { return r.output(ENDPOINT_INCOME) }
func (r *Request) HouseholdValue() (Value, error) { return r.output(ENDPOINT_HOUSEHOLD_VALUE) }
func (r *Request) Education() (Value, error)      { return r.output(ENDPOINT_EDUCATION) }
func (r *Request) Demographics() (Value, error)   { return r.output(ENDPOINT_DEMOGRAPHICS) }
func (r *Request) Ages() (Value, error)           { return r.output(ENDPOINT_AGES) }
func (r *Request) InfluenceDistribution() (Value, error) {
	return r.output(ENDPOINT_INFLUENCE_DISTRIBUTION)
}
func (r *Request) Influencers() (Value, error)   { return r.output(ENDPOINT_INFLUENCERS) }
func (r *Request) Interests() (Value, error)     { return r.output(ENDPOINT_INTERESTS) }
func (r *Request) PostInterests() (Value, error) { return r.output(ENDPOINT_POST_INTERESTS) }
func (r *Request) QueryTest() (Value, error)     { return r.output(ENDPOINT_QUERY_TEST) }
func (r *Request) Events() (Value, error)        { return r.output(ENDPOINT_EVENTS) }
func (r *Request) Stories() (Value, error)       { return r.output(ENDPOINT_STORIES) }

// Meta returns the query_meta of the volume response, not its output.
func (r *Request) Meta() (Value, error) {
	node, err := r.Run(ENDPOINT_VOLUME, false)
	if err != nil {
		return Value{}, err
	}
	return node.Get("query_meta"), nil
}
