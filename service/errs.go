package service

import "errors"

var (
	// ErrInvalidInput 曲线样本或配置结构不合法；曲线构造错误同时满足 curve.ErrInvalidInput
	ErrInvalidInput = errors.New("service: invalid input")

	// ErrNoFeasibleArrangement 搜索范围为空或没有任何可行的泵组方案
	ErrNoFeasibleArrangement = errors.New("service: no feasible arrangement")
)
