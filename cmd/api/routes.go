package main

import (
	"github.com/gin-gonic/gin"

	"queout/internal/auth"
	"queout/internal/httpapi"
	"queout/internal/rbac"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", h.Healthz)
	r.POST("/v1/auth/guest", h.GuestSession)
	r.POST("/v1/auth/login", h.Login)
	r.GET("/v1/luron/health", h.LuronHealth)

	anyRole := rbac.RequireAnyRole(auth.RoleUser, auth.RoleGuest)
	userOnly := rbac.RequireAnyRole(auth.RoleUser)

	v1 := r.Group("/v1")
	v1.Use(authMW, anyRole)
	{
		// Profile. Reads and device settings are open to guests; account
		// management is not.
		v1.GET("/me", h.Me)
		v1.PATCH("/me", userOnly, h.UpdateMe)
		v1.PUT("/me/creator-mode", h.SetCreatorMode)
		v1.PUT("/me/notifications", h.SetNotifications)
		v1.PUT("/me/ringtone", h.SetRingtone)

		// Phone verification: how a guest binds a real phone number.
		verification := v1.Group("/verification")
		{
			verification.POST("/request", h.RequestVerification)
			verification.POST("/verify", h.VerifyCode)
			verification.POST("/resend", h.ResendVerification)
			verification.GET("/status", h.VerificationStatus)
		}

		// Remote scheduling through the Luron API.
		v1.POST("/schedule", h.ScheduleCall)
		luronGroup := v1.Group("/luron")
		{
			luronGroup.GET("/history", h.LuronHistory)
			luronGroup.GET("/calls/:call_id", h.LuronCallDetails)
			luronGroup.GET("/stats", h.LuronStats)
		}

		// Local call records.
		upcoming := v1.Group("/calls/upcoming")
		{
			upcoming.GET("", h.ListUpcomingCalls)
			upcoming.POST("", h.CreateUpcomingCall)
			upcoming.PATCH("/:id", h.UpdateUpcomingCall)
			upcoming.DELETE("/:id", h.DeleteUpcomingCall)
			upcoming.POST("/:id/seen", h.MarkCallSeen)
			upcoming.POST("/:id/complete", h.CompleteCall)
		}
		history := v1.Group("/calls/history")
		{
			history.GET("", h.ListCallHistory)
			history.POST("", h.AddHistoryEntry)
			history.GET("/unread-count", h.UnreadHistoryCount)
			history.POST("/read-all", h.MarkAllHistoryRead)
			history.POST("/:id/read", h.MarkHistoryItemRead)
			history.DELETE("/:id", h.DeleteHistoryItem)
		}

		// Caller ids.
		callerIDs := v1.Group("/caller-ids")
		{
			callerIDs.GET("", h.ListCallerIDs)
			callerIDs.GET("/:id", h.GetCallerID)
			callerIDs.POST("", h.CreateCallerID)
			callerIDs.PATCH("/:id", h.RenameCallerID)
			callerIDs.DELETE("/:id", h.DeleteCallerID)
		}

		// Personas and their per-user configs.
		personas := v1.Group("/personas")
		{
			personas.GET("", h.ListPersonas)
			personas.POST("", h.CreatePersona)
			personas.GET("/:id", h.GetPersona)
			personas.PATCH("/:id", h.UpdatePersona)
			personas.DELETE("/:id", h.DeletePersona)
			personas.GET("/:id/config", h.GetPersonaConfig)
			personas.PUT("/:id/config", h.UpsertPersonaConfig)
			personas.DELETE("/:id/config", h.DeletePersonaConfig)
		}
		v1.GET("/persona-configs", h.ListPersonaConfigs)

		// Quick-schedule presets.
		quick := v1.Group("/quick-schedules")
		{
			quick.GET("", h.ListQuickSchedules)
			quick.POST("", h.CreateQuickSchedule)
			quick.GET("/:id", h.GetQuickSchedule)
			quick.PATCH("/:id", h.UpdateQuickSchedule)
			quick.DELETE("/:id", h.DeleteQuickSchedule)
			quick.POST("/:id/use", h.UseQuickSchedule)
			quick.POST("/:id/promote", h.PromoteQuickSchedule)
		}

		// Voice catalog.
		v1.GET("/voices", h.ListVoices)
		v1.GET("/voices/:id", h.GetVoice)

		// Subscription management stays off-limits to anonymous identities.
		sub := v1.Group("/subscription")
		sub.Use(userOnly)
		{
			sub.GET("", h.GetSubscription)
			sub.GET("/status", h.SubscriptionStatus)
			sub.POST("/tier", h.UpdateTier)
			sub.POST("/cancel", h.CancelSubscription)
			sub.POST("/reset-usage", h.ResetMonthlyUsage)
			sub.POST("/top-up", h.AddTopUp)
		}
	}
}
