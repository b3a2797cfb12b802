package dto

import (
	wfmodel "biography-api/internal/workflow/model"
)

// SubmitBiographyRequest 传记生成请求，表单或 JSON 均可；所有字段可选
type SubmitBiographyRequest struct {
	Birth      string `form:"birth" json:"birth"`
	Childhood  string `form:"childhood" json:"childhood"`
	Elementary string `form:"elementary" json:"elementary"`
	JuniorHigh string `form:"junior_high" json:"junior_high"`
	HighSchool string `form:"high_school" json:"high_school"`
	University string `form:"university" json:"university"`
	Work       string `form:"work" json:"work"`
	Marriage   string `form:"marriage" json:"marriage"`
	Childbirth string `form:"childbirth" json:"childbirth"`
	Children   string `form:"children" json:"children"`
	Current    string `form:"current" json:"current"`
}

// ToLifeEvents 转换为工作流输入
func (r *SubmitBiographyRequest) ToLifeEvents() wfmodel.LifeEvents {
	if r == nil {
		return wfmodel.LifeEvents{}
	}
	return wfmodel.LifeEvents{
		Birth:      r.Birth,
		Childhood:  r.Childhood,
		Elementary: r.Elementary,
		JuniorHigh: r.JuniorHigh,
		HighSchool: r.HighSchool,
		University: r.University,
		Work:       r.Work,
		Marriage:   r.Marriage,
		Childbirth: r.Childbirth,
		Children:   r.Children,
		Current:    r.Current,
	}
}

// SubmitBiographyResponse 成功响应：按顺序排列的五个章节
type SubmitBiographyResponse struct {
	Chapters []string `json:"chapters"`
}
