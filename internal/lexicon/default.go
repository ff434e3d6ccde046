package lexicon

// 内置默认词表。数据按类别维护，条目为规范显示拼写；
// 匹配一律在规范化拼写上进行，因此这里的大小写只影响输出。

// defaultCategories 默认技能分类词汇
var defaultCategories = map[string][]string{
	"programming_languages": {
		"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby",
		"PHP", "Swift", "Kotlin", "Go", "Rust", "Scala", "R", "MATLAB",
		"Perl", "Shell", "Bash", "PowerShell", "SQL", "HTML", "CSS",
		"Objective-C", "Dart", "Lua", "Groovy", "Haskell", "Clojure", "Elixir",
	},
	"frameworks": {
		"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask",
		"Spring", "ASP.NET", "Laravel", "Rails", "FastAPI", "NestJS",
		"Next.js", "Nuxt.js", "Svelte", "Ember", "Backbone", "jQuery",
		"Bootstrap", "Tailwind", "Material-UI", "TensorFlow", "PyTorch",
		"Keras", "Scikit-learn", "Pandas", "NumPy", "Flutter", "React Native",
		"Gin", "GORM",
	},
	"tools": {
		"Git", "GitHub", "GitLab", "Bitbucket", "Docker", "Kubernetes", "K8s",
		"Jenkins", "CI/CD", "Terraform", "Ansible", "Jira", "Confluence",
		"Postman", "Swagger", "Nginx", "Apache", "Elasticsearch",
		"RabbitMQ", "Kafka", "GraphQL", "REST", "SOAP", "Microservices",
		"Linux", "Agile", "Scrum", "TDD",
	},
	"databases": {
		"MySQL", "PostgreSQL", "MongoDB", "Redis", "Oracle", "SQLite",
		"Cassandra", "DynamoDB", "MariaDB", "SQL Server", "Firebase",
		"Neo4j", "CouchDB", "InfluxDB",
	},
	"cloud_platforms": {
		"AWS", "Azure", "GCP", "Google Cloud", "Heroku", "DigitalOcean",
	},
	"soft_skills": {
		"Leadership", "Communication", "Teamwork", "Problem Solving",
		"Mentoring", "Project Management",
	},
}

// defaultSynonymGroups 默认同义词组（规范化拼写）
// 同组内任一拼写都完全满足对组内其他拼写的要求
var defaultSynonymGroups = [][]string{
	{"python", "py", "python3"},
	{"javascript", "js", "es6", "ecmascript"},
	{"typescript", "ts"},
	{"react", "reactjs", "react js"},
	{"node", "nodejs", "node js"},
	{"django", "django rest framework", "drf"},
	{"postgresql", "postgres", "psql"},
	{"mongodb", "mongo"},
	{"sql", "mysql", "mssql", "sqlite"},
	{"docker", "containerization"},
	{"kubernetes", "k8s"},
	{"aws", "amazon web services"},
	{"gcp", "google cloud", "google cloud platform"},
	{"machine learning", "ml"},
	{"deep learning", "neural networks"},
	{"golang", "go"},
	{"java"},
	{"ci cd", "cicd"},
}

// defaultDegreeKeywords 学历关键词，按资历从高到低排列
// 扫描时首个命中即为最高学历
var defaultDegreeKeywords = []DegreeKeyword{
	{Keyword: "phd", Level: "phd"},
	{Keyword: "ph.d", Level: "phd"},
	{Keyword: "doctorate", Level: "phd"},
	{Keyword: "mba", Level: "mba"},
	{Keyword: "master", Level: "master"},
	{Keyword: "m.sc", Level: "master"},
	{Keyword: "msc", Level: "master"},
	{Keyword: "m.tech", Level: "master"},
	{Keyword: "mtech", Level: "master"},
	{Keyword: "ms", Level: "master"},
	{Keyword: "ma", Level: "master"},
	{Keyword: "bachelor", Level: "bachelor"},
	{Keyword: "b.sc", Level: "bachelor"},
	{Keyword: "bsc", Level: "bachelor"},
	{Keyword: "b.tech", Level: "bachelor"},
	{Keyword: "btech", Level: "bachelor"},
	{Keyword: "bs", Level: "bachelor"},
	{Keyword: "ba", Level: "bachelor"},
	{Keyword: "associate", Level: "associate"},
	{Keyword: "diploma", Level: "diploma"},
	{Keyword: "high school", Level: "diploma"},
}

// defaultCertificationKeywords 证书关键词
var defaultCertificationKeywords = []string{
	"AWS Certified", "Google Cloud Certified", "Azure Certified",
	"PMP", "CISSP", "CEH", "CompTIA", "Certified Scrum Master",
	"CSM", "CKA", "CKAD", "Oracle Certified", "Red Hat Certified",
	"Salesforce Certified", "ITIL", "Six Sigma",
}

// defaultBenefitKeywords 福利关键词（小写）
var defaultBenefitKeywords = []string{
	"health insurance", "dental", "vision", "401k", "retirement",
	"paid time off", "pto", "vacation", "sick leave", "parental leave",
	"maternity leave", "paternity leave", "flexible hours", "remote work",
	"work from home", "gym membership", "learning budget", "training",
	"professional development", "tuition reimbursement", "stock options",
	"equity", "bonus", "relocation assistance",
}

// defaultKnownPlaces 已知城市名（联系块定位兜底用）
var defaultKnownPlaces = []string{
	"Karachi", "Lahore", "Islamabad", "Rawalpindi", "Faisalabad",
	"Multan", "Peshawar", "Quetta", "Sialkot", "Gujranwala",
	"Hyderabad", "Bahawalpur", "Sukkur", "Abbottabad",
	"London", "Berlin", "Dubai", "Singapore", "Toronto",
	"New York", "San Francisco", "Seattle", "Austin", "Bangalore",
}

// defaultRegionNames 大区/省份名（最后兜底）
var defaultRegionNames = []string{
	"Punjab", "Sindh", "KPK", "Khyber Pakhtunkhwa", "Balochistan",
	"California", "Texas", "Ontario", "Bavaria",
}

// defaultSectionHeaders 章节标题同义词
var defaultSectionHeaders = map[string][]string{
	"summary": {
		"summary", "objective", "profile", "about", "professional summary",
		"about me",
	},
	"experience": {
		"experience", "work history", "employment", "professional experience",
		"work experience", "employment history",
	},
	"education": {
		"education", "academic", "qualification", "academic background",
		"educational background",
	},
	"skills": {
		"skills", "technical skills", "competencies", "technologies",
		"tech stack", "core competencies",
	},
	"certifications": {
		"certification", "certifications", "certificate", "certificates",
		"licenses",
	},
	"projects": {
		"project", "projects", "portfolio", "personal projects",
	},
	"requirements": {
		"requirements", "qualifications", "what we are looking for",
		"what we're looking for", "you have", "must have",
	},
	"responsibilities": {
		"responsibilities", "duties", "what you will do", "what you'll do",
		"role", "your mission",
	},
	"nice_to_have": {
		"nice to have", "preferred", "bonus", "plus", "advantageous",
		"preferred qualifications",
	},
	"benefits": {
		"benefits", "what we offer", "perks", "compensation",
	},
}

// Default 返回内置默认词表
func Default() *Lexicon {
	lex := &Lexicon{
		Categories:            defaultCategories,
		SynonymGroups:         defaultSynonymGroups,
		DegreeKeywords:        defaultDegreeKeywords,
		CertificationKeywords: defaultCertificationKeywords,
		BenefitKeywords:       defaultBenefitKeywords,
		KnownPlaces:           defaultKnownPlaces,
		RegionNames:           defaultRegionNames,
		SectionHeaders:        defaultSectionHeaders,
	}
	lex.buildIndexes()
	return lex
}
