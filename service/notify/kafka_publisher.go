/*
 * @module service/notify/kafka_publisher
 * @description 评估事件Kafka发布器，向下游系统广播缺口分析完成事件
 * @architecture 适配器模式 - 封装第三方Kafka客户端
 * @documentReference ai_docs/assessment_events.md
 * @stateFlow 构建事件 -> JSON序列化 -> 发送到topic
 * @rules KAFKA_BROKERS 未配置时发布器为空实现，业务流程不依赖消息通道可用
 * @dependencies github.com/segmentio/kafka-go, encoding/json
 * @refs service/scheduler/assessment_scheduler.go, service/init.go
 */

package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"assessment-service/service/models"

	"github.com/segmentio/kafka-go"
)

// 事件类型
const (
	EventAnalysisCompleted = "gap_analysis.completed"
	EventStandardsLoaded   = "standards.loaded"
)

// AssessmentEvent 评估事件
type AssessmentEvent struct {
	EventType    string                 `json:"event_type"`
	ClientID     string                 `json:"client_id"`
	EngagementID string                 `json:"engagement_id"`
	Payload      map[string]interface{} `json:"payload"`
	OccurredAt   time.Time              `json:"occurred_at"`
}

// Publisher 评估事件发布器
type Publisher struct {
	writer *kafka.Writer
	topic  string
}

// NewPublisherFromEnv 从环境变量创建发布器
// KAFKA_BROKERS 未设置时返回 nil，调用方按禁用处理
func NewPublisherFromEnv() *Publisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		slog.Info("KAFKA_BROKERS 未配置，评估事件发布已禁用")
		return nil
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "assessment.gap-reports"
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 100 * time.Millisecond,
	}

	slog.Info("评估事件发布器初始化成功", "brokers", brokers, "topic", topic)
	return &Publisher{writer: writer, topic: topic}
}

// Publish 发布评估事件
// 消息key为租户标识，保证同租户事件落在同一分区内有序
func (p *Publisher) Publish(ctx context.Context, eventType string, tenant models.Tenant, payload map[string]interface{}) error {
	if p == nil {
		return nil
	}

	event := AssessmentEvent{
		EventType:    eventType,
		ClientID:     tenant.ClientID,
		EngagementID: tenant.EngagementID,
		Payload:      payload,
		OccurredAt:   time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化评估事件失败: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(tenant.String()),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(sendCtx, msg); err != nil {
		return fmt.Errorf("发送评估事件失败: %w", err)
	}

	slog.Debug("评估事件已发送", "event_type", eventType, "tenant", tenant.String(), "topic", p.topic)
	return nil
}

// Close 关闭发布器
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
