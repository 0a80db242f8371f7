package handler

import "pumpline/service"

type errcode int

const (
	errBadRequest errcode = 10001 + iota
	errInternalServer
	errNoFeasible
)

func (e errcode) String() string {
	switch e {
	case errBadRequest:
		return "输入内容有误"
	case errInternalServer:
		return "计算处理错误"
	case errNoFeasible:
		return "没有可行的泵组方案"
	default:
		return "未知错误"
	}
}

type apiResponse struct {
	Code    errcode `json:"code"`
	Message string  `json:"message"`
	Data    any     `json:"data,omitempty"`
}

func success(data any) apiResponse {
	return apiResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

func fail(code errcode, message string) apiResponse {
	return apiResponse{
		Code:    code,
		Message: message,
	}
}

// Options 命令行开关
type Options struct {
	JSON    bool     // 以 apiResponse JSON 输出
	Watch   bool     // design 完成后监听配置文件
	Export  bool     // 写出报告文件
	Formats []string // 导出格式，为空时全部
}

type designData struct {
	Result *service.DesignResult `json:"result"`
	Files  []string              `json:"files,omitempty"`
}

type importData struct {
	Dir    string         `json:"dir"`
	Points map[string]int `json:"points"`
}
