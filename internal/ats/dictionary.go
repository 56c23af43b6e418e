package ats

import "regexp"

// SkillCategory names a group of related technical skills.
type SkillCategory string

const (
	CategoryLanguages    SkillCategory = "languages"
	CategoryFrontend     SkillCategory = "frontend"
	CategoryBackend      SkillCategory = "backend"
	CategoryDatabases    SkillCategory = "databases"
	CategoryCloudDevOps  SkillCategory = "cloudDevops"
	CategoryDataML       SkillCategory = "dataMl"
	CategoryTooling      SkillCategory = "tooling"
	CategorySecurity     SkillCategory = "security"
	CategoryMethodology  SkillCategory = "methodology"
	CategoryProfessional SkillCategory = "professional"
)

// TechnicalSkills is the canonical skill dictionary. Entries are lowercase
// and matched against normalized text with word boundaries, never substrings.
var TechnicalSkills = map[SkillCategory][]string{
	CategoryLanguages: {
		"javascript", "typescript", "python", "java", "c#", "c++", "go", "golang",
		"rust", "ruby", "php", "swift", "kotlin", "scala", "perl", "r", "matlab",
		"objective-c", "dart", "elixir", "erlang", "haskell", "clojure", "lua",
		"groovy", "julia", "fortran", "cobol", "assembly", "bash", "powershell",
		"sql", "html", "css", "sass", "less", "graphql",
	},
	CategoryFrontend: {
		"react", "angular", "vue", "vue.js", "svelte", "next.js", "nuxt.js",
		"gatsby", "ember", "backbone", "jquery", "redux", "mobx", "zustand",
		"tailwind", "bootstrap", "material-ui", "chakra", "webpack", "vite",
		"rollup", "parcel", "babel", "storybook", "styled-components",
		"responsive design", "web components", "pwa", "spa",
	},
	CategoryBackend: {
		"node.js", "express", "nestjs", "fastify", "django", "flask", "fastapi",
		"spring", "spring boot", "rails", "laravel", "symfony", "asp.net",
		".net", "gin", "echo", "fiber", "phoenix", "grpc", "rest", "rest api",
		"restful", "microservices", "websocket", "websockets", "graphql api",
		"soap", "api design", "serverless",
	},
	CategoryDatabases: {
		"mysql", "postgresql", "postgres", "mongodb", "redis", "sqlite",
		"mariadb", "oracle", "sql server", "dynamodb", "cassandra", "couchdb",
		"neo4j", "elasticsearch", "solr", "firebase", "firestore", "supabase",
		"cockroachdb", "influxdb", "timescaledb", "memcached", "etcd",
		"database design", "data modeling", "orm", "nosql",
	},
	CategoryCloudDevOps: {
		"aws", "azure", "gcp", "google cloud", "heroku", "digitalocean",
		"cloudflare", "vercel", "netlify", "docker", "kubernetes", "k8s",
		"terraform", "ansible", "puppet", "chef", "jenkins", "circleci",
		"travis", "github actions", "gitlab ci", "ci/cd", "devops",
		"infrastructure as code", "lambda", "ec2", "s3", "cloudformation",
		"helm", "prometheus", "grafana", "datadog", "new relic", "nginx",
		"apache", "load balancing", "auto scaling", "monitoring", "observability",
	},
	CategoryDataML: {
		"machine learning", "deep learning", "data science", "data analysis",
		"data engineering", "artificial intelligence", "nlp",
		"natural language processing", "computer vision", "tensorflow",
		"pytorch", "keras", "scikit-learn", "pandas", "numpy", "scipy",
		"matplotlib", "jupyter", "spark", "hadoop", "kafka", "airflow",
		"etl", "data pipeline", "data warehouse", "big data", "tableau",
		"power bi", "statistics", "a/b testing", "llm",
	},
	CategoryTooling: {
		"git", "github", "gitlab", "bitbucket", "jira", "confluence", "slack",
		"figma", "sketch", "postman", "insomnia", "vscode", "intellij", "vim",
		"linux", "unix", "macos", "windows", "shell scripting", "jest", "mocha",
		"cypress", "selenium", "playwright", "pytest", "junit", "testing",
		"unit testing", "integration testing", "tdd", "bdd", "debugging",
	},
	CategorySecurity: {
		"security", "cybersecurity", "penetration testing", "oauth", "oauth2",
		"jwt", "saml", "sso", "encryption", "tls", "ssl", "https",
		"authentication", "authorization", "owasp", "vulnerability assessment",
		"compliance", "gdpr", "soc 2", "zero trust",
	},
	CategoryMethodology: {
		"agile", "scrum", "kanban", "waterfall", "lean", "safe", "xp",
		"pair programming", "code review", "continuous integration",
		"continuous deployment", "continuous delivery", "sprint planning",
		"retrospectives", "user stories", "design patterns", "solid",
		"domain-driven design", "event-driven architecture", "system design",
		"architecture",
	},
	CategoryProfessional: {
		"leadership", "communication", "collaboration", "teamwork",
		"problem solving", "critical thinking", "project management",
		"product management", "stakeholder management", "mentoring",
		"cross-functional", "time management", "presentation", "negotiation",
		"strategic planning", "decision making", "adaptability",
	},
}

type skillMatcher struct {
	skill string
	re    *regexp.Regexp
}

// skillMatchers holds one compiled word-boundary matcher per dictionary
// entry, built once at load. Iteration order follows categoryOrder so the
// same input always yields the same technical-set insertion order.
var skillMatchers = buildSkillMatchers()

var categoryOrder = []SkillCategory{
	CategoryLanguages,
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabases,
	CategoryCloudDevOps,
	CategoryDataML,
	CategoryTooling,
	CategorySecurity,
	CategoryMethodology,
	CategoryProfessional,
}

func buildSkillMatchers() []skillMatcher {
	var matchers []skillMatcher
	for _, category := range categoryOrder {
		for _, skill := range TechnicalSkills[category] {
			pattern := `(?i)\b` + regexp.QuoteMeta(skill) + `\b`
			matchers = append(matchers, skillMatcher{
				skill: skill,
				re:    regexp.MustCompile(pattern),
			})
		}
	}
	return matchers
}
