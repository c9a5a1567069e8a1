// Package feature_kind_enum 定义职业特性种类的标签枚举
// 特性种类在数据装载（seed）阶段确定，运行期不再做特性名的字符串匹配
package feature_kind_enum

const (
	GENERIC   = "generic"   // 普通特性，不触发升级步骤
	ASI       = "asi"       // 属性值提升特性
	EXPERTISE = "expertise" // 专精特性
	ARCHETYPE = "archetype" // 职业范型选择特性
)
