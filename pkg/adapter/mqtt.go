package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/caspian-labs/roomcraft/pkg/layout"
)

// TopicLayoutJobs and TopicValidationJobs are the two named job-intake
// topics. Results for topic T are published on
// "T.results"; progress for any job is published on "T.progress".
const (
	TopicLayoutJobs     = "layout.jobs"
	TopicValidationJobs = "validation.jobs"
)

// MQTTConfig configures the broker connection.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

// Client subscribes to the layout/validation job topics and publishes
// results and progress records back to the bus. It holds no pipeline state
// of its own; every job is run fresh through HandleLayoutJob/
// HandleValidationJob against the shared layout.Config and Metrics.
type Client struct {
	mq      mqtt.Client
	cfg     layout.Config
	metrics *Metrics
}

// NewClient builds an MQTT client for the given broker configuration. It
// does not connect; call Connect to do so.
func NewClient(mqttCfg MQTTConfig, pipelineCfg layout.Config, metrics *Metrics) *Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(mqttCfg.Broker)
	clientID := mqttCfg.ClientID
	if clientID == "" {
		clientID = "roomcraftd"
	}
	opts.SetClientID(clientID)
	if mqttCfg.Username != "" {
		opts.SetUsername(mqttCfg.Username)
		opts.SetPassword(mqttCfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(5 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetCleanSession(false)
	opts.SetOrderMatters(false)

	c := &Client{cfg: pipelineCfg, metrics: metrics}
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Printf("roomcraft adapter: MQTT connection lost: %v", err)
	})
	c.mq = mqtt.NewClient(opts)
	return c
}

// Connect dials the broker and subscribes to both job topics.
func (c *Client) Connect() error {
	if token := c.mq.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connecting to MQTT broker: %w", token.Error())
	}
	if err := c.subscribe(TopicLayoutJobs, c.onLayoutJob); err != nil {
		return err
	}
	if err := c.subscribe(TopicValidationJobs, c.onValidationJob); err != nil {
		return err
	}
	return nil
}

// Disconnect closes the MQTT connection, waiting up to 250ms to quiesce.
func (c *Client) Disconnect() {
	if c.mq != nil && c.mq.IsConnected() {
		c.mq.Disconnect(250)
	}
}

func (c *Client) subscribe(topic string, handler mqtt.MessageHandler) error {
	token := c.mq.Subscribe(topic, 1, handler)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, token.Error())
	}
	return nil
}

func (c *Client) onLayoutJob(_ mqtt.Client, msg mqtt.Message) {
	rec, err := decodeLayoutJob(msg.Payload())
	if err != nil {
		log.Printf("roomcraft adapter: %v", err)
		return
	}

	c.publishProgress(TopicLayoutJobs, rec.ID, 0.1, "job received")
	start := time.Now()
	result := HandleLayoutJob(context.Background(), rec, c.cfg)
	c.publishProgress(TopicLayoutJobs, rec.ID, 1.0, "job "+string(result.Status))

	if c.metrics != nil {
		c.metrics.RecordJob(TopicLayoutJobs, result.Status, time.Since(start).Seconds())
		c.metrics.RecordVariants(len(result.Layouts))
		if result.Status == StatusFailed {
			c.metrics.RecordFailure(TopicLayoutJobs, result.ErrorKind)
		}
	}
	c.publishResult(TopicLayoutJobs, result)
}

func (c *Client) onValidationJob(_ mqtt.Client, msg mqtt.Message) {
	rec, err := decodeValidationJob(msg.Payload())
	if err != nil {
		log.Printf("roomcraft adapter: %v", err)
		return
	}

	for _, p := range ValidationProgressCheckpoints[:len(ValidationProgressCheckpoints)-1] {
		c.publishProgress(TopicValidationJobs, rec.ID, p, "validating")
	}
	start := time.Now()
	result := HandleValidationJob(context.Background(), rec)
	c.publishProgress(TopicValidationJobs, rec.ID, 1.0, "job "+string(result.Status))

	if c.metrics != nil {
		c.metrics.RecordJob(TopicValidationJobs, result.Status, time.Since(start).Seconds())
		if result.Status == StatusFailed {
			c.metrics.RecordFailure(TopicValidationJobs, result.ErrorKind)
		}
	}
	c.publishResult(TopicValidationJobs, result)
}

func (c *Client) publishResult(topic string, record interface{}) {
	payload, err := json.Marshal(record)
	if err != nil {
		log.Printf("roomcraft adapter: marshaling result for %s: %v", topic, err)
		return
	}
	resultsTopic := topic + ".results"
	token := c.mq.Publish(resultsTopic, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		log.Printf("roomcraft adapter: publishing to %s: %v", resultsTopic, token.Error())
	}
}

func (c *Client) publishProgress(topic, jobID string, progress float64, message string) {
	rec := ProgressRecord{JobID: jobID, Progress: progress, Message: message, Timestamp: time.Now().Unix()}
	payload, err := json.Marshal(rec)
	if err != nil {
		return
	}
	token := c.mq.Publish(topic+".progress", 0, false, payload)
	token.Wait()
}
