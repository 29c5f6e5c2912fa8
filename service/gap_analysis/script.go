/*
 * @module service/gap_analysis/script
 * @description Yaegi 脚本求值器，支持标准最低要求中的 expression 类检查项 - 带编译缓存
 * @architecture 工具层 - 动态脚本执行
 * @documentReference ai_docs/gap_analysis_req.md
 * @stateFlow 脚本哈希查缓存 -> 未命中则编译 -> 注入参数执行
 * @rules 脚本必须提供 Run(params map[string]interface{}) (interface{}, error) 入口；编译结果按内容哈希缓存
 * @dependencies github.com/traefik/yaegi
 * @refs standards_inspector.go
 */

package gap_analysis

import (
	"crypto/sha1"
	"fmt"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// ScriptEvaluator 脚本求值器
type ScriptEvaluator struct {
	mu    sync.RWMutex
	cache map[string]func(map[string]interface{}) (interface{}, error)
}

// NewScriptEvaluator 创建脚本求值器实例
func NewScriptEvaluator() *ScriptEvaluator {
	return &ScriptEvaluator{
		cache: make(map[string]func(map[string]interface{}) (interface{}, error)),
	}
}

// Evaluate 执行脚本并返回结果
func (e *ScriptEvaluator) Evaluate(script string, params map[string]interface{}) (interface{}, error) {
	hash := fmt.Sprintf("%x", sha1.Sum([]byte(script)))

	e.mu.RLock()
	fn, ok := e.cache[hash]
	e.mu.RUnlock()

	if !ok {
		var err error
		fn, err = e.compile(script)
		if err != nil {
			return nil, fmt.Errorf("脚本编译失败: %w", err)
		}
		e.mu.Lock()
		e.cache[hash] = fn
		e.mu.Unlock()
	}

	return fn(params)
}

// compile 编译脚本为可执行函数
func (e *ScriptEvaluator) compile(script string) (func(map[string]interface{}) (interface{}, error), error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("加载标准库失败: %w", err)
	}

	// 包装脚本: 要求脚本必须实现一个 Run 函数
	wrapped := fmt.Sprintf(`
package main

import (
	"fmt"
	"strings"
	"strconv"
)

var _ = fmt.Sprintf
var _ = strings.TrimSpace
var _ = strconv.Atoi

%s
`, script)

	if _, err := i.Eval(wrapped); err != nil {
		return nil, err
	}

	v, err := i.Eval("main.Run")
	if err != nil {
		return nil, fmt.Errorf("脚本缺少 Run 入口: %w", err)
	}

	fn, ok := v.Interface().(func(map[string]interface{}) (interface{}, error))
	if !ok {
		return nil, fmt.Errorf("Run 入口签名必须是 func(map[string]interface{}) (interface{}, error)")
	}
	return fn, nil
}
