// Package scoring implements the deterministic multi-stage scoring funnel:
// hard filters, education, the AI experience pyramid, engineering maturity,
// skill verification and the weighted aggregation that ties them together.
//
// All thresholds, weights and keyword tables live in Config so they can be
// tuned and unit-tested independently of the matching engine. The embedded
// defaults are the second-generation constant set (see DESIGN.md).
package scoring

import (
	"fmt"
	"regexp"

	"github.com/mitchellh/mapstructure"
)

// ConfigVersion identifies the constant generation carried by DefaultConfig.
const ConfigVersion = "v2"

// Weights are the five dimension weights of the overall score. They are
// expected to sum to 1.
type Weights struct {
	Experience  float64 `mapstructure:"experience"`
	Engineering float64 `mapstructure:"engineering"`
	Semantic    float64 `mapstructure:"semantic"`
	Education   float64 `mapstructure:"education"`
	Skills      float64 `mapstructure:"skills"`
}

// EducationConfig drives the education scorer.
type EducationConfig struct {
	SchoolTopPoints       float64 `mapstructure:"school_top_points"`
	SchoolDoctoratePoints float64 `mapstructure:"school_doctorate_points"`
	SchoolMidPoints       float64 `mapstructure:"school_mid_points"`
	MajorCorePoints       float64 `mapstructure:"major_core_points"`
	MajorQuantPoints      float64 `mapstructure:"major_quant_points"`

	BachelorWeight     float64 `mapstructure:"bachelor_weight"`
	GraduateWeight     float64 `mapstructure:"graduate_weight"`
	BachelorOnlyWeight float64 `mapstructure:"bachelor_only_weight"`

	Denominator    float64 `mapstructure:"denominator"`
	PreBonusCap    float64 `mapstructure:"pre_bonus_cap"`
	ThesisBonusPer float64 `mapstructure:"thesis_bonus_per"`
}

// ExperienceConfig drives the 3-tier AI pyramid classifier.
type ExperienceConfig struct {
	// Keywords maps tier → keyword → weight.
	Keywords map[int]map[string]float64 `mapstructure:"keywords"`

	TierLabels     map[int]string  `mapstructure:"tier_labels"`
	TierBaseScores map[int]float64 `mapstructure:"tier_base_scores"`

	// TagWeightFactor discounts keywords that only appear in the skill-tag
	// header and never in work history or the raw narrative.
	TagWeightFactor float64 `mapstructure:"tag_weight_factor"`

	// Tier3MinWeight is the unweighted keyword total needed for the top
	// tier. Any nonzero tier-3 or tier-2 signal below it lands on tier 2.
	Tier3MinWeight float64 `mapstructure:"tier3_min_weight"`

	StackBonusCap float64 `mapstructure:"stack_bonus_cap"`
	EvidenceCap   int     `mapstructure:"evidence_cap"`
}

// EngineeringConfig drives the three capability ladders.
type EngineeringConfig struct {
	BackendScores  map[int]float64 `mapstructure:"backend_scores"`
	DatabaseScores map[int]float64 `mapstructure:"database_scores"`
	FrontendScores map[int]float64 `mapstructure:"frontend_scores"`
	Ceiling        float64         `mapstructure:"ceiling"`
}

// SkillsConfig drives ecosystem classification and claim verification.
type SkillsConfig struct {
	EcosystemScores map[string]float64 `mapstructure:"ecosystem_scores"`
	HighValueSkills []string           `mapstructure:"high_value_skills"`

	PortfolioPenalty   float64 `mapstructure:"portfolio_penalty"`
	UnsupportedPenalty float64 `mapstructure:"unsupported_penalty"`
	StuffingPenalty    float64 `mapstructure:"stuffing_penalty"`
	StuffingRatio      float64 `mapstructure:"stuffing_ratio"`
	StuffingMinWords   int     `mapstructure:"stuffing_min_words"`
	Floor              float64 `mapstructure:"floor"`
}

// Config is the complete, versioned scoring configuration.
type Config struct {
	Version     string            `mapstructure:"version"`
	Weights     Weights           `mapstructure:"weights"`
	HardFailure float64           `mapstructure:"hard_failure_score"`
	Education   EducationConfig   `mapstructure:"education"`
	Experience  ExperienceConfig  `mapstructure:"experience"`
	Engineering EngineeringConfig `mapstructure:"engineering"`
	Skills      SkillsConfig      `mapstructure:"skills"`
}

// DefaultConfig returns the embedded v2 constant set.
func DefaultConfig() *Config {
	return &Config{
		Version:     ConfigVersion,
		HardFailure: 10.0,
		Weights: Weights{
			Experience:  0.35,
			Engineering: 0.20,
			Semantic:    0.20,
			Education:   0.15,
			Skills:      0.10,
		},
		Education: EducationConfig{
			SchoolTopPoints:       10,
			SchoolDoctoratePoints: 15,
			SchoolMidPoints:       3,
			MajorCorePoints:       10,
			MajorQuantPoints:      3,
			BachelorWeight:        0.7,
			GraduateWeight:        0.3,
			BachelorOnlyWeight:    0.9,
			Denominator:           24,
			PreBonusCap:           95,
			ThesisBonusPer:        2.5,
		},
		Experience: ExperienceConfig{
			Keywords:        defaultTierKeywords(),
			TierLabels:      map[int]string{1: "Wrapper", 2: "RAG Architect", 3: "AI Expert"},
			TierBaseScores:  map[int]float64{1: 60, 2: 80, 3: 100},
			TagWeightFactor: 0.4,
			Tier3MinWeight:  3.0,
			StackBonusCap:   10.0,
			EvidenceCap:     15,
		},
		Engineering: EngineeringConfig{
			BackendScores:  map[int]float64{0: 0, 1: 0.10, 2: 0.20, 3: 0.35},
			DatabaseScores: map[int]float64{0: 0, 1: 0.05, 2: 0.12, 3: 0.20},
			FrontendScores: map[int]float64{0: 0, 1: 0.02, 2: 0.05, 3: 0.15},
			Ceiling:        0.7,
		},
		Skills: SkillsConfig{
			EcosystemScores: map[string]float64{
				"LLM Stack":      90,
				"Deep Learning":  70,
				"Traditional ML": 50,
				"General":        30,
			},
			HighValueSkills: []string{
				"PyTorch", "TensorFlow", "CUDA", "vLLM", "Fine-tuning",
				"RAG", "LangChain", "Docker", "Kubernetes", "K8s",
			},
			PortfolioPenalty:   2.0,
			UnsupportedPenalty: 5.0,
			StuffingPenalty:    5.0,
			StuffingRatio:      2.0,
			StuffingMinWords:   20,
			Floor:              10.0,
		},
	}
}

// Decode overlays raw configuration (typically a viper subtree) on the
// defaults, so operators only tune the constants they care about.
func Decode(raw map[string]any) (*Config, error) {
	cfg := DefaultConfig()
	if len(raw) == 0 {
		return cfg, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding scoring config: %w", err)
	}
	return cfg, nil
}

func defaultTierKeywords() map[int]map[string]float64 {
	return map[int]map[string]float64{
		3: {
			// Model training and fine-tuning.
			"PyTorch": 1.5, "HuggingFace": 1.5, "Hugging Face": 1.5,
			"LoRA": 1.8, "QLoRA": 1.8, "Fine-tuning": 1.8, "Fine tuning": 1.8,
			"SFT": 1.5, "PEFT": 1.8, "RLHF": 2.0, "DPO": 1.8,
			"Quantization": 1.5, "GGUF": 1.5, "AWQ": 1.5, "GPTQ": 1.5,
			"BitsAndBytes": 1.5, "Llama": 1.2, "Mistral": 1.2,
			"Training": 1.0, "Loss Function": 1.5, "Learning Rate": 1.2,
			"Gradient": 1.2, "Backpropagation": 1.2,
			// Inference optimization.
			"vLLM": 2.5, "TensorRT-LLM": 2.5, "TensorRT": 2.5, "TGI": 2.0,
			"CUDA": 2.5, "Flash Attention": 2.5, "KV Cache": 2.0,
			"Speculative Decoding": 2.0, "GPU Optimization": 2.0,
			"NCCL": 2.0, "DeepSpeed": 2.0, "Megatron": 2.0,
			"Model Parallelism": 2.0, "Tensor Parallelism": 2.0,
			"Triton Inference": 2.0,
		},
		2: {
			"Vector Database": 1.5, "Milvus": 1.5, "Qdrant": 1.5,
			"Pinecone": 1.5, "Chroma": 1.2, "Weaviate": 1.5,
			"RAG": 1.8, "Retrieval Augmented": 1.8,
			"Embedding": 1.2, "Embedding optimization": 1.5,
			"Hybrid Search": 1.5, "Reranking": 1.5, "HyDE": 1.5,
			"Function Calling": 1.5, "ReAct": 1.5, "GraphRAG": 1.8,
			"Agent": 1.2, "LlamaIndex": 1.2, "LangGraph": 1.5,
			"Context Window": 1.2, "Hallucination": 1.2,
		},
		1: {
			"OpenAI API": 1.0, "OpenAI": 0.8, "Claude API": 1.0,
			"Prompt Engineering": 1.0, "Prompt": 0.5,
			"Streamlit": 0.8, "Gradio": 0.8,
			"LangChain": 1.0, "Chatbot": 0.8, "ChatGPT": 0.5,
			"GPT-4": 0.8, "GPT-3": 0.8, "API": 0.3,
		},
	}
}

// Pattern tables below are compiled once at package load. They are part of
// the v2 generation but are not operator-tunable: changing a regex is a code
// change, not a threshold tweak.

var (
	// Complexity flags for the experience classifier.
	dataScalePattern = regexp.MustCompile(`(?i)(百萬|million|billion|十萬|hundred thousand|大規模|large.?scale|` +
		`\d+[MBT]\b|\d+萬|\d+億)`)
	systemArchPattern = regexp.MustCompile(`(?i)(微服務|microservice|分散式|distributed|K8s|Kubernetes|` +
		`cluster|叢集|pipeline|管線|production|生產環境|` +
		`real.?time|即時|線上服務|online serving|inference serving|部署|deploy)`)
	modelScalePattern = regexp.MustCompile(`(?i)(7[0B]B|13B|70B|175B|65B|34B|大型模型|large model|` +
		`multi.?GPU|多GPU|A100|H100|V100)`)

	// Quantified-improvement evidence. Counts of matches feed the metric bonus.
	validMetricPattern = regexp.MustCompile(`(?i)(reduce[d]?\s+.*?\d+%|improve[d]?\s+.*?\d+%|` +
		`降低.*?\d+%|提升.*?\d+%|優化.*?\d+%|加速.*?\d+%|縮短.*?\d+%|` +
		`latency.*?\d+|throughput.*?\d+|QPS.*?\d+|TPS.*?\d+|RPS.*?\d+|` +
		`Recall@|Precision@|F1|BLEU|ROUGE|CER|WER|MOS|PESQ|SDR|SiSDR|EER|` +
		`accuracy.*?\d+%|準確率.*?\d+%|精確率.*?\d+%|召回率.*?\d+%|` +
		`\d+ms\s*->\s*\d+ms|\d+%\s*→|\d+x\s+faster|\d+倍.*?速|` +
		`VRAM|GPU\s*memory|顯存.*?\d+|記憶體.*?\d+)`)

	// Engineering ladders, highest level first.
	backendL3Pattern = regexp.MustCompile(`(?i)(Kubernetes|K8s|RabbitMQ|Kafka|Redis|Celery|gRPC|` +
		`微服務|microservice|Go\b|Golang|Rust|` +
		`Message Queue|高併發|high.?concurrency|load.?balanc)`)
	backendL2Pattern = regexp.MustCompile(`(?i)(Asyncio|async|Docker|Gunicorn|Uvicorn|Nginx|` +
		`CI/CD|GitHub Actions|GitLab CI|容器|container|` +
		`reverse proxy|反向代理)`)
	backendL1Pattern = regexp.MustCompile(`(?i)(Flask|FastAPI|Django|REST\s*API|Python.*API|` +
		`Express|Spring Boot|後端|backend|API\s+develop)`)

	dbL3Pattern = regexp.MustCompile(`(?i)(pgvector|Milvus|Qdrant|Pinecone|Weaviate|Chroma|` +
		`Vector\s*DB|向量資料庫|Neo4j|Graph\s*DB|HNSW|IVF)`)
	dbL2Pattern = regexp.MustCompile(`(?i)(PostgreSQL|MongoDB|SQLAlchemy|Airflow|Elasticsearch|` +
		`NoSQL|ORM|ETL|Redis|資料清理|data pipeline)`)
	dbL1Pattern = regexp.MustCompile(`(?i)(MySQL|SQLite|SQL\b|CSV|Pandas|SELECT|JOIN|` +
		`資料庫|database)`)

	feL3Pattern = regexp.MustCompile(`(?i)(React|Vue\.?js|Vue\b|Next\.?js|Nuxt|Angular|TypeScript|` +
		`Tailwind|SSE|Server.?Sent.?Event|Streaming.*UI|` +
		`前端框架|modern.*frontend)`)
	feL2Pattern = regexp.MustCompile(`(?i)(HTML5?|CSS3?|Bootstrap|JavaScript|jQuery|` +
		`前端|web\s*develop|網頁)`)
	feL1Pattern = regexp.MustCompile(`(?i)(Streamlit|Gradio|Dash|Panel|Chainlit)`)

	// Ecosystem classification, most specific first.
	llmStackPattern = regexp.MustCompile(`(?i)(LangChain|LlamaIndex|vLLM|Ollama|OpenAI|Claude|` +
		`LLM|GPT|Llama|Mistral|RAG|Prompt|Fine.?tun|` +
		`LoRA|QLoRA|PEFT|Embedding|Vector|RLHF|DPO|` +
		`大型語言模型|語言模型)`)
	deepLearningPattern = regexp.MustCompile(`(?i)(PyTorch|TensorFlow|Keras|Jax|CNN|RNN|LSTM|GAN|` +
		`Transformer|Attention|BERT|ResNet|YOLO|` +
		`Neural Network|深度學習|神經網路)`)
	traditionalMLPattern = regexp.MustCompile(`(?i)(Sklearn|scikit.?learn|XGBoost|LightGBM|CatBoost|` +
		`Random Forest|SVM|Logistic Regression|Decision Tree|` +
		`Feature Engineering|特徵工程)`)

	// Education lookup tables.
	twGradeAPattern = regexp.MustCompile(`(?i)(台灣|臺灣|清華|交通|陽明交通|陽明|成功|政治|台灣科技|臺灣科技)大學|` +
		`(台|臺|清|交|成|政|台科|臺科|陽明交)大|` +
		`National Taiwan University|National Tsing Hua University|` +
		`National Chiao Tung University|National Yang Ming Chiao Tung University|` +
		`National Cheng Kung University|National Chengchi University|` +
		`National Taiwan University of Science and Technology|Taiwan Tech|` +
		`National Yang.Ming University|` +
		`NTU\b|NTHU|NCTU|NYCU|NCKU|NCCU|NTUST`)
	twGradeBPattern = regexp.MustCompile(`(?i)(中央|中興|中正|中山|台北科技|臺北科技|台灣師範|臺灣師範)大學|` +
		`中(央|興|正|山)大|北科|師大`)

	coreMajorPattern = regexp.MustCompile(`(?i)資工|資訊工程|資管|資訊管理|電機|EECS|Computer Science|CS\b|` +
		`MIS|EE\b|AI|Artificial Intelligence|Data Science|資訊科學|` +
		`Machine Learning|軟體工程|Software Engineering|電信工程`)
	quantMajorPattern = regexp.MustCompile(`(?i)統計|數學|應數|數據|理學院|Math|Stat|Physics|物理|` +
		`應用數學|Applied Math|Operations Research|工業工程`)

	thesisAIPattern = regexp.MustCompile(`(?i)NLP|Natural Language|Computer Vision|CV|Deep Learning|` +
		`Transformer|BERT|GPT|LLM|Reinforcement Learning|` +
		`Neural Network|機器學習|深度學習|自然語言`)
	topVenuePattern = regexp.MustCompile(`(?i)NeurIPS|NIPS|ICLR|ICML|CVPR|ICCV|ECCV|ACL|EMNLP|AAAI|IJCAI`)
)

// gradeASchools is the curated international top-tier school list.
var gradeASchools = []string{
	"Stanford", "MIT", "CMU", "Carnegie Mellon", "UC Berkeley", "Harvard",
	"Yale", "Princeton", "Columbia", "UPenn", "Cornell", "Caltech",
	"Georgia Tech", "UIUC", "UCLA", "USC", "University of Southern California",
	"NYU", "Purdue", "UMD", "UT Austin", "UCSD", "U-Mich",
	"University of Michigan", "UW", "University of Washington",
	"ETH Zurich", "Oxford", "Cambridge", "Imperial College",
	"University of Toronto", "Waterloo", "NUS", "NTU Singapore",
	"Tsinghua", "Peking University", "KAIST", "University of Tokyo",
}
