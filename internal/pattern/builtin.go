package pattern

import "regexp"

// Built-in structural patterns. These detect identifier shapes common in
// infrastructure logs; matching is character-shape based, with no semantic
// validation beyond the syntax itself.
var (
	// ISO datetimes: 2024-01-15T14:30:25.123Z, 2024-01-15 14:30:25+02:00,
	// and the dash-separated form AWS uses in object keys
	// (2024-01-15T14-30-25-789Z).
	isoDatetimeRegex = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}[T ]\d{2}[:-]\d{2}[:-]\d{2}(?:[.,-]\d+)?(?:Z|[+-]\d{2}:?\d{2})?\b`)

	// Bare ISO dates: 2024-01-15
	isoDateRegex = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

	// Compact datetimes common in file names: 20240115-143025
	compactDatetimeRegex = regexp.MustCompile(`\b\d{8}[-T]\d{6}\b`)

	// Day-of-month plus time of day, as in "Wed Sep 24 11:17:52 NZST 2025".
	// Weekday, month, and zone words are left for the word checks.
	dayTimeRegex = regexp.MustCompile(`\b\d{1,2} \d{2}:\d{2}:\d{2}\b`)

	// Time of day on its own: 14:30:25
	timeOfDayRegex = regexp.MustCompile(`\b\d{1,2}:\d{2}:\d{2}\b`)

	// IPv4 addresses: 192.168.1.1
	ipv4Regex = regexp.MustCompile(`\b(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)

	// IPv6 addresses: 2001:db8::1 and the full uncompressed forms
	ipv6Regex = regexp.MustCompile(`(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}|(?:[0-9a-fA-F]{1,4}:){1,7}:|(?:[0-9a-fA-F]{1,4}:){1,6}:[0-9a-fA-F]{1,4}|(?:[0-9a-fA-F]{1,4}:){1,5}(?::[0-9a-fA-F]{1,4}){1,2}|(?:[0-9a-fA-F]{1,4}:){1,4}(?::[0-9a-fA-F]{1,4}){1,3}|(?:[0-9a-fA-F]{1,4}:){1,3}(?::[0-9a-fA-F]{1,4}){1,4}|(?:[0-9a-fA-F]{1,4}:){1,2}(?::[0-9a-fA-F]{1,4}){1,5}|[0-9a-fA-F]{1,4}:(?::[0-9a-fA-F]{1,4}){1,6}`)

	// EC2 public hostnames: ec2-198-51-100-1.compute-1.amazonaws.com.
	// The embedded address is redacted; the "ec2-" prefix and the compute
	// domain survive.
	ec2PublicRegex = regexp.MustCompile(`\bec2-(\d{1,3}-\d{1,3}-\d{1,3}-\d{1,3})\.((?:[a-z0-9-]+\.)?compute(?:-\d+)?\.amazonaws\.com)\b`)

	// EC2 internal hostnames: i-0abc123def.ec2.internal. The instance ID
	// leaf is redacted; the domain suffix survives.
	ec2InternalRegex = regexp.MustCompile(`\b(i-[0-9a-f]+)\.(ec2\.internal|[a-z]{2}-[a-z]+-\d\.compute\.internal)\b`)

	// CloudFront distribution hostnames: d111111abcdef8.cloudfront.net
	cloudfrontRegex = regexp.MustCompile(`\b([a-z0-9]+)\.(cloudfront\.net)\b`)

	// Regional AWS service endpoints with generated labels:
	// my-db.cluster-abcdefghijkl.us-east-1.rds.amazonaws.com. The name and
	// cluster labels are redacted; region and service domain survive.
	awsServiceRegex = regexp.MustCompile(`\b([a-z][a-z0-9-]*)\.([a-z0-9-]+)\.([a-z]{2}-[a-z]+-\d)\.(rds|elasticache|es|elb)\.amazonaws\.com\b`)

	// S3 URIs and ARNs, scanned for embedded 12-digit account IDs.
	s3URIRegex      = regexp.MustCompile(`\bs3://[A-Za-z0-9._/-]+`)
	arnRegex        = regexp.MustCompile(`\barn:aws:[a-z0-9-]+:[a-z0-9-]*:\d{12}:\S+`)
	awsAccountRegex = regexp.MustCompile(`\d{12}`)

	// Docker container IDs: full 64-hex or short 12-hex form
	dockerIDRegex = regexp.MustCompile(`\b[0-9a-f]{64}\b|\b[0-9a-f]{12}\b`)

	// Kubernetes pod name tails: <deployment>-667689996-jd4g7. The
	// template hash and random suffix are redacted; the deployment label
	// and its hyphens survive.
	podSuffixRegex = regexp.MustCompile(`-(\d{8,10})-([a-z0-9]{5})\b`)

	// Opaque hex components between path separators, e.g. docker overlay
	// layer directories: /var/lib/docker/overlay2/<64 hex>/diff
	hexPathComponentRegex = regexp.MustCompile(`/([0-9a-f]{12,64})(?:/|\b)`)
)

// builtinRules maps config pattern names to their implementations. The
// application order comes from the configuration, not from this table.
var builtinRules = map[string]Rule{
	"timestamp": &regexpRule{
		category: CategoryTimestamp,
		regexps: []*regexp.Regexp{
			isoDatetimeRegex,
			compactDatetimeRegex,
			isoDateRegex,
			dayTimeRegex,
			timeOfDayRegex,
		},
	},
	"ip_address": &regexpRule{
		category: CategoryIPAddress,
		regexps:  []*regexp.Regexp{ipv4Regex, ipv6Regex},
	},
	"aws_hostname": &selectiveRule{
		category: CategoryAWSHostname,
		parts: []selectivePart{
			{regex: ec2PublicRegex, groups: []int{1}},
			{regex: ec2InternalRegex, groups: []int{1}},
			{regex: awsServiceRegex, groups: []int{1, 2}},
			{regex: cloudfrontRegex, groups: []int{1}},
		},
	},
	"aws_path":     &awsPathRule{},
	"container_id": &containerRule{},
	"file_path": &selectiveRule{
		category: CategoryFilePath,
		parts: []selectivePart{
			{regex: hexPathComponentRegex, groups: []int{1}},
		},
	},
}

// selectiveRule redacts only the named capture groups of each regex,
// leaving the rest of the match (domain suffixes, separators, structural
// prefixes) untouched.
type selectiveRule struct {
	category Category
	parts    []selectivePart
}

type selectivePart struct {
	regex  *regexp.Regexp
	groups []int
}

func (r *selectiveRule) Category() Category { return r.category }

func (r *selectiveRule) apply(text string, marker rune, spans []Span) (string, []Span) {
	for _, part := range r.parts {
		rule := regexpRule{category: r.category, regexps: []*regexp.Regexp{part.regex}, groups: part.groups}
		text, spans = rule.apply(text, marker, spans)
	}
	return text, spans
}

// awsPathRule redacts 12-digit account IDs embedded in S3 URIs and ARNs.
// Bucket names and key components stay readable; the entropy pass handles
// any random segments they contain.
type awsPathRule struct{}

func (r *awsPathRule) Category() Category { return CategoryAWSPath }

func (r *awsPathRule) apply(text string, marker rune, spans []Span) (string, []Span) {
	var ranges [][2]int
	for _, outer := range []*regexp.Regexp{s3URIRegex, arnRegex} {
		for _, m := range outer.FindAllStringIndex(text, -1) {
			for _, inner := range awsAccountRegex.FindAllStringIndex(text[m[0]:m[1]], -1) {
				ranges = append(ranges, [2]int{m[0] + inner[0], m[0] + inner[1]})
			}
		}
	}
	return replaceRanges(text, ranges, marker, spans, CategoryAWSPath)
}

// containerRule redacts Docker container IDs outright and the generated
// tail of Kubernetes pod names while preserving the deployment label.
type containerRule struct{}

func (r *containerRule) Category() Category { return CategoryContainerID }

func (r *containerRule) apply(text string, marker rune, spans []Span) (string, []Span) {
	full := regexpRule{category: CategoryContainerID, regexps: []*regexp.Regexp{dockerIDRegex}}
	text, spans = full.apply(text, marker, spans)

	tail := regexpRule{category: CategoryContainerID, regexps: []*regexp.Regexp{podSuffixRegex}, groups: []int{1, 2}}
	return tail.apply(text, marker, spans)
}
