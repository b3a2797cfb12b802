package model

// ChapterDelimiter 每章末尾的哨兵分隔符
const ChapterDelimiter = "##"

// ChapterCount 传记固定章节数
const ChapterCount = 5

// ChapterTitles 按顺序排列的固定章节标题
var ChapterTitles = [ChapterCount]string{
	"幼少期の思い出",
	"学生時代",
	"社会人としての歩み",
	"家族との時間",
	"新たな挑戦",
}

// LifeEvents 用户填写的人生各阶段经历，均可为空
type LifeEvents struct {
	Birth      string
	Childhood  string
	Elementary string
	JuniorHigh string
	HighSchool string
	University string
	Work       string
	Marriage   string
	Childbirth string
	Children   string
	Current    string
}

type BiographyGenerateInput struct {
	Events LifeEvents

	Provider string
	Model    string

	MaxTokens *int
}

type BiographyGenerateOutput struct {
	Content string
	Meta    LLMUsageMeta
}
